package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"resumatch/resume-matcher/internal/matcher"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Matcher  MatcherConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	EmbeddingDim   int
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
}

// MatcherConfig carries everything the scoring pipeline treats as injected
// configuration: the skill vocabulary, the composite weights, the score-band
// thresholds and the text bounds.
type MatcherConfig struct {
	SkillVocabulary []string
	Weights         matcher.ScoreWeights
	Bands           matcher.BandThresholds
	MaxTextLength   int
	NERMaxChars     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_matcher"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resume_matcher_docs"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			EmbeddingDim:   getEnvAsInt("EMBEDDING_DIM", 768),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
		Matcher: MatcherConfig{
			SkillVocabulary: getEnvAsList("SKILL_VOCABULARY", matcher.DefaultSkillVocabulary),
			Weights: matcher.ScoreWeights{
				Semantic:   getEnvAsFloat("SEMANTIC_WEIGHT", matcher.DefaultScoreWeights.Semantic),
				Skills:     getEnvAsFloat("SKILLS_WEIGHT", matcher.DefaultScoreWeights.Skills),
				Experience: getEnvAsFloat("EXPERIENCE_WEIGHT", matcher.DefaultScoreWeights.Experience),
				Education:  getEnvAsFloat("EDUCATION_WEIGHT", matcher.DefaultScoreWeights.Education),
			},
			Bands: matcher.BandThresholds{
				Excellent: getEnvAsFloat("EXCELLENT_THRESHOLD", matcher.DefaultBandThresholds.Excellent),
				Good:      getEnvAsFloat("GOOD_THRESHOLD", matcher.DefaultBandThresholds.Good),
				Moderate:  getEnvAsFloat("MODERATE_THRESHOLD", matcher.DefaultBandThresholds.Moderate),
			},
			MaxTextLength: getEnvAsInt("MAX_TEXT_LENGTH", matcher.DefaultMaxTextLength),
			NERMaxChars:   getEnvAsInt("NER_MAX_CHARS", 4000),
		},
	}
}

// Validate checks matcher configuration at startup so misconfiguration is
// rejected before any request is served.
func (c *Config) Validate() error {
	if err := c.Matcher.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Matcher.Bands.Validate(); err != nil {
		return err
	}
	if len(c.Matcher.SkillVocabulary) == 0 {
		return fmt.Errorf("%w: skill vocabulary is empty", matcher.ErrInvalidConfig)
	}
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
