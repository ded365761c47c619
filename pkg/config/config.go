package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// FallbackPolicy controls what a gateway client does when its provider
// credentials are absent: substitute canned placeholder data, or fail the
// request outright.
type FallbackPolicy string

const (
	FallbackMock FallbackPolicy = "mock"
	FallbackFail FallbackPolicy = "fail"
)

// DeleteMode controls whether deleting a template flips isActive off or
// removes the row.
type DeleteMode string

const (
	DeleteSoft DeleteMode = "soft"
	DeleteHard DeleteMode = "hard"
)

// ProviderConfig holds the settings of one external AI provider.
type ProviderConfig struct {
	APIKey    string
	BaseURL   string
	OnMissing FallbackPolicy
}

// Configured reports whether credentials are present.
func (p ProviderConfig) Configured() bool {
	return p.APIKey != ""
}

// Config holds all application configuration. It is built once at process
// start with Load and passed by reference to every component; there is no
// package-level instance.
type Config struct {
	Server struct {
		Port    string
		Env     string
		Timeout time.Duration
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		MaxConns int
	}

	Providers struct {
		Text    ProviderConfig
		Content ProviderConfig
		Image   ProviderConfig
	}

	Templates struct {
		DeleteMode DeleteMode
	}

	Logging struct {
		Level  string
		Format string
	}

	Cache struct {
		Enabled     bool
		TTL         time.Duration
		MaxSize     int
		PurgeWindow time.Duration
	}

	Observability struct {
		MetricsPort string
		SchemaPath  string
	}
}

// Load reads configuration from the environment, loading a .env file first
// if one exists.
func Load() *Config {
	godotenv.Load()

	cfg := &Config{}

	cfg.Server.Port = getEnvString("PORT", "6000")
	cfg.Server.Env = getEnvString("APP_ENV", "development")
	cfg.Server.Timeout = getEnvDuration("SERVER_TIMEOUT", 30*time.Second)

	cfg.Database.Host = getEnvString("DB_HOST", "localhost")
	cfg.Database.Port = getEnvString("DB_PORT", "5432")
	cfg.Database.User = getEnvString("DB_USER", "postgres")
	cfg.Database.Password = getEnvString("DB_PASSWORD", "postgres")
	cfg.Database.Name = getEnvString("DB_NAME", "character-forge")
	cfg.Database.SSLMode = getEnvString("DB_SSL_MODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 20)

	// The text and content providers degrade to placeholder data when
	// unconfigured; the image provider fails hard. Both behaviors are
	// policy, overridable per provider.
	cfg.Providers.Text = ProviderConfig{
		APIKey:    getEnvString("GROQ_API_KEY", ""),
		BaseURL:   getEnvString("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		OnMissing: getEnvPolicy("TEXT_FALLBACK", FallbackMock),
	}
	cfg.Providers.Content = ProviderConfig{
		APIKey:    getEnvString("EXA_API_KEY", ""),
		BaseURL:   getEnvString("EXA_BASE_URL", "https://api.exa.ai"),
		OnMissing: getEnvPolicy("CONTENT_FALLBACK", FallbackMock),
	}
	cfg.Providers.Image = ProviderConfig{
		APIKey:    getEnvString("RUNWARE_API_KEY", ""),
		BaseURL:   getEnvString("RUNWARE_BASE_URL", "https://api.runware.ai"),
		OnMissing: getEnvPolicy("IMAGE_FALLBACK", FallbackFail),
	}

	cfg.Templates.DeleteMode = getEnvDeleteMode("TEMPLATE_DELETE", DeleteSoft)

	cfg.Logging.Level = getEnvString("LOG_LEVEL", "info")
	cfg.Logging.Format = getEnvString("LOG_FORMAT", "json")

	cfg.Cache.Enabled = getEnvBool("CACHE_ENABLED", true)
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", 5*time.Minute)
	cfg.Cache.MaxSize = getEnvInt("CACHE_MAX_SIZE", 1000)
	cfg.Cache.PurgeWindow = getEnvDuration("CACHE_PURGE_WINDOW", 10*time.Minute)

	cfg.Observability.MetricsPort = getEnvString("METRICS_PORT", "2112")
	cfg.Observability.SchemaPath = getEnvString("OPENAPI_SCHEMA", "api/openapi.yaml")

	return cfg
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvPolicy(key string, defaultValue FallbackPolicy) FallbackPolicy {
	switch FallbackPolicy(strings.ToLower(os.Getenv(key))) {
	case FallbackMock:
		return FallbackMock
	case FallbackFail:
		return FallbackFail
	}
	return defaultValue
}

func getEnvDeleteMode(key string, defaultValue DeleteMode) DeleteMode {
	switch DeleteMode(strings.ToLower(os.Getenv(key))) {
	case DeleteSoft:
		return DeleteSoft
	case DeleteHard:
		return DeleteHard
	}
	return defaultValue
}
