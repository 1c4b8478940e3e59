package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/sakhi-dev/sakhi-backend/internal/pkg/retry"
)

// Config holds the application configuration. Values come from the process
// environment; the env file selected by the -env flag only fills in variables
// that are not already set, so the environment always wins over the file.
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Provider selection. Empty selectors are only legal for capabilities
	// listed in DisabledServices; anything else aborts startup.
	ChatProvider        string   `env:"CHAT_PROVIDER"`
	TranslationProvider string   `env:"TRANSLATION_PROVIDER"`
	StorageProvider     string   `env:"BUCKET_PROVIDER"`
	VectorStoreProvider string   `env:"VECTOR_STORE_PROVIDER"`
	DisabledServices    []string `env:"DISABLED_SERVICES" envSeparator:","`

	// External service configurations
	ChatCfg        ChatConnectorConfig        `envPrefix:"CHAT_"`
	VectorStoreCfg VectorStoreConnectorConfig `envPrefix:"VECTOR_STORE_"`
	TranslateCfg   TranslateConnectorConfig   `envPrefix:"TRANSLATION_"`
	StorageCfg     StorageConnectorConfig     `envPrefix:"BUCKET_"`

	// Session cache configuration. An empty address selects the in-process
	// history store (single-node deployments and tests).
	RedisCfg RedisConfig `envPrefix:"REDIS_"`

	// Engine configuration
	EngineCfg EngineConfig `envPrefix:"LLM_"`

	// Audience -> vector index id
	Indices map[string]string `env:"VECTOR_INDICES" envSeparator:","`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Prompt templates (loaded from JSON file, with embedded defaults)
	Prompts PromptConfig

	// Environment (set from flag, not from env var)
	Environment string
}

type ChatConnectorConfig struct {
	HTTPClientConfig
	Model               string `env:"MODEL"`
	CompletionsEndpoint string `env:"COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	// Azure only: appended as the api-version query parameter.
	APIVersion string `env:"API_VERSION"`
}

type VectorStoreConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type TranslateConnectorConfig struct {
	HTTPClientConfig
	TranslateEndpoint string               `env:"TRANSLATE_ENDPOINT" envDefault:"/v1/translate"`
	ASREndpoint       string               `env:"ASR_ENDPOINT" envDefault:"/v1/asr"`
	TTSEndpoint       string               `env:"TTS_ENDPOINT" envDefault:"/v1/tts"`
	Retry             pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type StorageConnectorConfig struct {
	HTTPClientConfig
	// UploadEndpoint is the path objects are PUT under (e.g. an OCI
	// pre-authenticated request path). PublicBaseURL is the prefix public
	// object URLs are built from.
	UploadEndpoint string               `env:"UPLOAD_ENDPOINT" envDefault:"/o"`
	PublicBaseURL  string               `env:"PUBLIC_BASE_URL"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"12h"`
}

// EngineConfig carries the retrieval and composition knobs of the query
// engine.
type EngineConfig struct {
	Temperature     float64 `env:"TEMPERATURE" envDefault:"0"`
	EnableBotIntent bool    `env:"ENABLE_BOT_INTENT" envDefault:"false"`
	// MaxMessages bounds history injection to MaxMessages*2 prior messages
	// (user+assistant pairs).
	MaxMessages int `env:"MAX_MESSAGES" envDefault:"4"`
	// FetchK raw candidates are requested from the vector store to leave
	// filtering headroom; TopDocsToFetch of them survive the score filter.
	FetchK         int     `env:"FETCH_K" envDefault:"20"`
	TopDocsToFetch int     `env:"TOP_DOCS_TO_FETCH" envDefault:"2"`
	MinScore       float64 `env:"DOCS_MIN_SCORE" envDefault:"0.7"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
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

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Load prompt templates from JSON file
	if err := loadPrompts(cfg); err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.EngineCfg.MaxMessages < 0 {
		return fmt.Errorf("LLM_MAX_MESSAGES must not be negative, got %d", cfg.EngineCfg.MaxMessages)
	}

	if cfg.EngineCfg.FetchK < 1 || cfg.EngineCfg.FetchK > 100 {
		return fmt.Errorf("LLM_FETCH_K must be between 1 and 100, got %d", cfg.EngineCfg.FetchK)
	}

	if cfg.EngineCfg.TopDocsToFetch < 1 || cfg.EngineCfg.TopDocsToFetch > cfg.EngineCfg.FetchK {
		return fmt.Errorf("LLM_TOP_DOCS_TO_FETCH must be between 1 and LLM_FETCH_K(%d), got %d",
			cfg.EngineCfg.FetchK, cfg.EngineCfg.TopDocsToFetch)
	}

	if cfg.RedisCfg.TTL < time.Minute {
		return fmt.Errorf("REDIS_TTL must be at least 1m, got %s", cfg.RedisCfg.TTL)
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
