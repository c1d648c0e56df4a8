package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/form-builder/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Store kinds selectable through FORM_STORE
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Completion providers selectable through LLM_PROVIDER
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string           `env:"SERVER_ADDR"`
	Port       string           `env:"PORT" envDefault:"3000"`
	HTTPCfg    HTTPServerConfig `envPrefix:"HTTP_"`

	// Allowed CORS origins, comma separated
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Storage configuration
	StoreCfg StoreConfig

	// Form and response policies
	FormCfg     FormConfig     `envPrefix:"FORM_"`
	ResponseCfg ResponseConfig `envPrefix:"RESPONSES_"`

	// Completion provider configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Environment (set from flag, not from env var)
	Environment string
}

// HTTPServerConfig timeouts. WriteTimeout and RequestTimeout default to 0 so
// schema generation waits on the provider for as long as it takes.
type HTTPServerConfig struct {
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"0s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type StoreConfig struct {
	Kind string `env:"FORM_STORE" envDefault:"memory"`

	// Postgres
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// SQLite
	SQLitePath string `env:"SQLITE_PATH" envDefault:"form-builder.db"`

	// MemoryOrphanTTL bounds how long the memory store keeps responses for
	// unknown forms when RESPONSES_STRICT_FORM_REF=false; 0 keeps them forever.
	MemoryOrphanTTL time.Duration `env:"MEMORY_ORPHAN_TTL" envDefault:"1h"`
}

type FormConfig struct {
	// MaxDescriptionLength limits the description size in runes; 0 disables the check.
	MaxDescriptionLength int `env:"MAX_DESCRIPTION_LENGTH" envDefault:"0"`
}

type ResponseConfig struct {
	// StrictFormReference rejects responses whose form does not exist.
	StrictFormReference bool `env:"STRICT_FORM_REF" envDefault:"true"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Provider    string               `env:"PROVIDER" envDefault:"openai"`
	Model       string               `env:"MODEL" envDefault:"mistralai/mistral-7b-instruct:free"`
	Temperature float32              `env:"TEMPERATURE" envDefault:"0.1"`
	Referer     string               `env:"HTTP_REFERER" envDefault:"http://localhost:5173"`
	AppTitle    string               `env:"APP_TITLE" envDefault:"AI Dynamic Form Builder"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
	Gemini      GeminiConfig         `envPrefix:"GEMINI_"`
}

type GeminiConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL string `env:"BASE_URL"`
}

type HTTPClientConfig struct {
	// RequestTimeout of 0 leaves the provider call unbounded.
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"0s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"0s"`
	Token                 string        `env:"API_KEY"`
	Url                   string        `env:"BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
}

// Addr returns the listen address, falling back to PORT when SERVER_ADDR is unset.
func (c *Config) Addr() string {
	if c.ServerAddr != "" {
		return c.ServerAddr
	}
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	return parseConfig(*envFlag)
}

func parseConfig(environment string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	cfg.StoreCfg.Kind = strings.ToLower(strings.TrimSpace(cfg.StoreCfg.Kind))
	cfg.LLMConnectorCfg.Provider = strings.ToLower(strings.TrimSpace(cfg.LLMConnectorCfg.Provider))

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.StoreCfg.Kind {
	case StoreMemory:
	case StorePostgres:
		if cfg.StoreCfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when FORM_STORE=postgres")
		}
		if cfg.StoreCfg.DBMaxConns < 1 || cfg.StoreCfg.DBMaxConns > 200 {
			errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.StoreCfg.DBMaxConns))
		}
		if cfg.StoreCfg.DBMinConns < 0 || cfg.StoreCfg.DBMinConns > cfg.StoreCfg.DBMaxConns {
			errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.StoreCfg.DBMaxConns, cfg.StoreCfg.DBMinConns))
		}
	case StoreSQLite:
		if cfg.StoreCfg.SQLitePath == "" {
			errors = append(errors, "SQLITE_PATH is required when FORM_STORE=sqlite")
		}
	default:
		errors = append(errors, fmt.Sprintf("FORM_STORE must be one of memory, postgres, sqlite, got %q", cfg.StoreCfg.Kind))
	}

	llm := cfg.LLMConnectorCfg
	switch llm.Provider {
	case ProviderOpenAI:
		if llm.Token == "" {
			errors = append(errors, "LLM_API_KEY is required when LLM_PROVIDER=openai")
		}
		if llm.Url == "" {
			errors = append(errors, "LLM_BASE_URL must not be empty")
		}
	case ProviderGemini:
		if llm.Gemini.APIKey == "" {
			errors = append(errors, "LLM_GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case ProviderMock:
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of openai, gemini, mock, got %q", llm.Provider))
	}

	if llm.Temperature < 0 || llm.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %v", llm.Temperature))
	}

	if llm.Retry.Attempts < 1 || llm.Retry.Attempts > 10 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_ATTEMPTS must be between 1 and 10, got %d", llm.Retry.Attempts))
	}

	if cfg.StoreCfg.MemoryOrphanTTL < 0 {
		errors = append(errors, fmt.Sprintf("MEMORY_ORPHAN_TTL must not be negative, got %s", cfg.StoreCfg.MemoryOrphanTTL))
	}

	if cfg.FormCfg.MaxDescriptionLength < 0 {
		errors = append(errors, fmt.Sprintf("FORM_MAX_DESCRIPTION_LENGTH must not be negative, got %d", cfg.FormCfg.MaxDescriptionLength))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
