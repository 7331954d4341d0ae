package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resumatch/resume-matcher/internal/config"
	"resumatch/resume-matcher/internal/handlers"
	"resumatch/resume-matcher/internal/matcher"
	"resumatch/resume-matcher/internal/repositories"
	"resumatch/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI (embedding + NER models, loaded once, read-only)
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbeddingModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Gemini.EmbeddingDim,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize the matching pipeline
	normalizer := matcher.NewTextNormalizer(cfg.Matcher.MaxTextLength)

	skillExtractor, err := matcher.NewSkillExtractor(cfg.Matcher.SkillVocabulary)
	if err != nil {
		log.Fatalf("❌ Failed to initialize skill extractor: %v", err)
	}

	scoreCombiner, err := matcher.NewScoreCombiner(cfg.Matcher.Weights)
	if err != nil {
		log.Fatalf("❌ Failed to initialize score combiner: %v", err)
	}

	recommender, err := matcher.NewRecommendationGenerator(cfg.Matcher.Bands)
	if err != nil {
		log.Fatalf("❌ Failed to initialize recommendation generator: %v", err)
	}

	similarityEngine := services.NewSimilarityEngine(geminiService)
	entityExtractor := services.NewEntityExtractor(geminiService, cfg.Matcher.NERMaxChars)

	matchService := services.NewMatchService(
		matchRepo,
		docRepo,
		similarityEngine,
		entityExtractor,
		normalizer,
		skillExtractor,
		scoreCombiner,
		recommender,
	)
	log.Println("✅ Match pipeline initialized")

	// Initialize worker
	worker := services.NewWorker(
		matchRepo,
		matchService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		pdfParser,
		normalizer,
		geminiService,
		qdrantService,
		cfg.Storage.MaxFileSize,
	)
	matchHandler := handlers.NewMatchHandler(
		matchRepo,
		docRepo,
		worker,
	)
	similarHandler := handlers.NewSimilarHandler(
		docRepo,
		geminiService,
		qdrantService,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume-Job Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload/resume", uploadHandler.HandleUploadResume)
	api.Post("/upload/job", uploadHandler.HandleUploadJob)
	api.Post("/match", matchHandler.HandleMatch)
	api.Get("/match/:id", matchHandler.HandleGetMatch)
	api.Get("/documents/:id/similar", similarHandler.HandleGetSimilar)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume-Job Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload/resume",
				"POST /api/v1/upload/job",
				"POST /api/v1/match",
				"GET /api/v1/match/:id",
				"GET /api/v1/documents/:id/similar",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
