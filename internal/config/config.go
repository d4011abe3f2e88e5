package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	HTTPAddr string

	DBType     string // file, sqlite or postgres
	DBDSN      string
	SQLitePath string
	RunsFile   string

	AuthServiceURL string
	LocalAuthToken string

	VisionAPIURL string
	VisionAPIKey string
	VisionModel  string

	SaveDebounce time.Duration
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:            getEnv("APP_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			HTTPAddr:       getEnv("HTTP_ADDR", ":8088"),
			DBType:         getEnv("STORAGE_BACKEND", "file"),
			DBDSN:          getEnv("POSTGRES_DSN", ""),
			SQLitePath:     getEnv("SQLITE_PATH", "data/planner.db"),
			RunsFile:       getEnv("RUNS_FILE", "data/planner_runs.json"),
			AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
			LocalAuthToken: getEnv("LOCAL_AUTH_TOKEN", "MOCK-TOKEN"),
			VisionAPIURL:   getEnv("VISION_API_URL", ""),
			VisionAPIKey:   getEnv("VISION_API_KEY", ""),
			VisionModel:    getEnv("VISION_MODEL", "gemini-3-flash-preview"),
			SaveDebounce:   getEnvDuration("SAVE_DEBOUNCE_MS", 2000),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.DBType {
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "file":
		if c.RunsFile == "" {
			return errors.New("File storage requires RUNS_FILE to be set")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, sqlite, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	return nil
}

// VisionEnabled reports whether the image analysis feature can be used.
// An absent key disables the feature instead of failing at call time.
func (c *Config) VisionEnabled() bool {
	return c.VisionAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallbackMs int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(fallbackMs) * time.Millisecond
}
