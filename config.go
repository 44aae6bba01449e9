package pantryassistant

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type ModelConfig struct {
	ModelID     string  `env:"MODEL_ID,default=us.anthropic.claude-3-7-sonnet-20250219-v1:0"`
	MaxTokens   int32   `env:"MAX_TOKENS,default=1024"`
	Temperature float32 `env:"TEMPERATURE,default=0.7"`
	TopP        float32 `env:"TOP_P,default=0.9"`
}

type AssistantConfig struct {
	DatabasePath       string        `env:"DATABASE_PATH,default=data/inventory.db"`
	SeedPath           string        `env:"SEED_PATH"`
	SeedS3Bucket       string        `env:"SEED_S3_BUCKET"`
	SeedS3Key          string        `env:"SEED_S3_KEY,default=seed/inventory.json"`
	Planner            string        `env:"PLANNER,default=mock"`
	BaseOllamaEndpoint string        `env:"BASE_OLLAMA_ENDPOINT,default=http://localhost:11434"`
	OllamaModel        string        `env:"OLLAMA_MODEL,default=llama3.1"`
	RecipeCacheSize    int           `env:"RECIPE_CACHE_SIZE,default=32"`
	RecipeCacheTTL     time.Duration `env:"RECIPE_CACHE_TTL,default=0s"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	DefaultThreshold   float64       `env:"DEFAULT_THRESHOLD,default=1"`
	StrictMatching     bool          `env:"STRICT_INTENT_MATCHING,default=false"`
	SlackWebhookURL    string        `env:"SLACK_WEBHOOK_URL"`
	SlackChannel       string        `env:"SLACK_CHANNEL,default=#pantry"`
	JournalPath        string        `env:"JOURNAL_PATH"`
}

type ServerConfig struct {
	Addr        string `env:"HTTP_ADDR,default=:8000"`
	CORSOrigins string `env:"CORS_ORIGINS"`
	GinMode     string `env:"GIN_MODE,default=debug"`
	OtelEnabled bool   `env:"OTEL_ENABLED,default=false"`
}

type LogConfig struct {
	Level       string `env:"LOG_LEVEL,default=info"`
	Format      string `env:"LOG_FORMAT,default=json"`
	Development bool   `env:"LOG_DEVELOPMENT,default=false"`
}

// Config groups every environment-driven setting.
type Config struct {
	Model     ModelConfig
	Assistant AssistantConfig
	Server    ServerConfig
	Log       LogConfig
}

// LoadConfig loads .env files when present, then decodes the environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("SETUP: No .env file loaded", "error", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
