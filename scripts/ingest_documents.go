package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumatch/resume-matcher/internal/config"
	"resumatch/resume-matcher/internal/matcher"
	"resumatch/resume-matcher/internal/models"
	"resumatch/resume-matcher/internal/repositories"
	"resumatch/resume-matcher/internal/services"
)

// Bulk-ingests a directory of job description PDFs: extracts text, stores a
// Document record and indexes the embedding, so a fresh deployment starts
// with a searchable job corpus. Usage: go run scripts/ingest_documents.go <dir>
func main() {
	log.Println("🚀 Starting job description ingestion...")

	dir := "./reference_docs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	docRepo := repositories.NewDocumentRepository(db)

	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbeddingModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

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
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	normalizer := matcher.NewTextNormalizer(cfg.Matcher.MaxTextLength)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("❌ Failed to read directory %s: %v", dir, err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		log.Printf("\n📄 Processing: %s", entry.Name())

		rawText, err := pdfParser.ExtractText(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d characters", len(rawText))

		doc := models.Document{
			ID:               uuid.New(),
			Filename:         entry.Name(),
			OriginalFileName: entry.Name(),
			DocType:          models.DocTypeJobDescription,
			FilePath:         path,
			RawText:          rawText,
			NormalizedText:   normalizer.Normalize(rawText),
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := docRepo.Create(&doc); err != nil {
			log.Printf("   ❌ Failed to store document: %v", err)
			failCount++
			continue
		}

		embedding, err := geminiService.GenerateEmbedding(ctx, rawText)
		if err != nil {
			log.Printf("   ⚠️  Failed to generate embedding, document stored unindexed: %v", err)
			failCount++
			continue
		}

		if err := qdrantService.IndexDocument(ctx, doc.ID.String(), string(doc.DocType), doc.Filename, embedding); err != nil {
			log.Printf("   ⚠️  Failed to index document: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Ingested %s as %s", entry.Name(), doc.ID)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
