package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type LLMBackend string

const (
	LLMMock   LLMBackend = "mock"
	LLMGemini LLMBackend = "gemini"
	LLMVertex LLMBackend = "vertex"
)

type StorageBackend string

const (
	StorageMemory    StorageBackend = "memory"
	StorageFirestore StorageBackend = "firestore"
	StorageMongo     StorageBackend = "mongo"
)

type Config struct {
	Mode Mode

	Port     string
	LogLevel string

	AllowedOrigins []string

	LLMBackend   LLMBackend
	GeminiAPIKey string
	GCPProjectID string
	GCPLocation  string
	ModelName    string

	// Token budgets handed to the completion provider.
	ClassifyMaxTokens int
	ReplyMaxTokens    int
	// Wall-clock limit for a single completion call.
	CompletionTimeout time.Duration

	StorageBackend StorageBackend
	MongoURL       string
	MongoDatabase  string

	// Location used to interpret dates without an explicit zone.
	TimeZone string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func getListEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads a .env file if present, then all env vars, and builds the config.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	modeStr := getEnv("AIDE_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	defaultLLM := LLMGemini
	if mode == ModeLocal {
		defaultLLM = LLMMock
	}

	cfg := &Config{
		Mode: mode,

		Port:     getEnv("AIDE_PORT", "8001"),
		LogLevel: getEnv("AIDE_LOG_LEVEL", "info"),

		AllowedOrigins: getListEnv("AIDE_ALLOWED_ORIGINS", []string{"*"}),

		LLMBackend:   LLMBackend(strings.ToLower(getEnv("AIDE_LLM_BACKEND", string(defaultLLM)))),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GCPProjectID: getEnv("AIDE_GCP_PROJECT", ""),
		GCPLocation:  getEnv("AIDE_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("AIDE_MODEL_NAME", "gemini-2.0-flash"),

		StorageBackend: StorageBackend(strings.ToLower(getEnv("AIDE_STORAGE_BACKEND", string(StorageMemory)))),
		MongoURL:       getEnv("MONGO_URL", "mongodb://localhost:27017/"),
		MongoDatabase:  getEnv("AIDE_MONGO_DATABASE", "ai_assistant"),

		TimeZone: getEnv("AIDE_TIMEZONE", "Local"),
	}

	var err error
	if cfg.ClassifyMaxTokens, err = getIntEnv("AIDE_CLASSIFY_MAX_TOKENS", 512); err != nil {
		return nil, err
	}
	if cfg.ReplyMaxTokens, err = getIntEnv("AIDE_REPLY_MAX_TOKENS", 4096); err != nil {
		return nil, err
	}
	if cfg.CompletionTimeout, err = getDurationEnv("AIDE_COMPLETION_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LLMBackend {
	case LLMMock:
	case LLMGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set for the gemini backend")
		}
	case LLMVertex:
		if c.GCPProjectID == "" || c.GCPLocation == "" {
			return fmt.Errorf("AIDE_GCP_PROJECT and AIDE_GCP_LOCATION must be set for the vertex backend")
		}
	default:
		return fmt.Errorf("unknown AIDE_LLM_BACKEND %q", c.LLMBackend)
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StorageFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("AIDE_GCP_PROJECT is required for the firestore storage backend")
		}
	case StorageMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required for the mongo storage backend")
		}
	default:
		return fmt.Errorf("unknown AIDE_STORAGE_BACKEND %q", c.StorageBackend)
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid AIDE_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
