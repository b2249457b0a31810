package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverSupabase = "supabase"
	StorageDriverMinio    = "minio"

	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"

	AIProviderOpenAI = "openai"
	AIProviderGemini = "gemini"
)

type Config struct {
	// Supabase
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseJWTSecret     string
	SupabaseStorageBucket string

	// Database (direct connection, optional; PostgREST is used when empty)
	DatabaseURL    string
	DatabaseDriver string

	// Object storage
	StorageDriver  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	// AI
	AIProvider    string
	AIModel       string
	AIImageModel  string
	AIMaxTokens   int
	AILanguage    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string

	// Job queue
	AMQPURL   string
	AMQPQueue string

	// Mail
	MailerSendAPIKey string
	MailFromEmail    string
	MailFromName     string
	ContactInbox     string

	// Auth
	SessionSecret    string
	OAuthRedirectURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
	LogLevel    string
}

// Load reads an optional .env file, an optional config file and the process
// environment, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	serviceKey := v.GetString("supabase_service_role_key")
	if serviceKey == "" {
		serviceKey = v.GetString("supabase_publishable_key")
	}

	cfg := &Config{
		SupabaseURL:           strings.TrimSuffix(v.GetString("supabase_url"), "/"),
		SupabaseServiceKey:    serviceKey,
		SupabaseJWTSecret:     v.GetString("supabase_jwt_secret"),
		SupabaseStorageBucket: v.GetString("supabase_storage_bucket"),

		DatabaseURL:    v.GetString("database_url"),
		DatabaseDriver: v.GetString("database_driver"),

		StorageDriver:  v.GetString("storage_driver"),
		MinioEndpoint:  v.GetString("minio_endpoint"),
		MinioAccessKey: v.GetString("minio_access_key"),
		MinioSecretKey: v.GetString("minio_secret_key"),
		MinioBucket:    v.GetString("minio_bucket"),
		MinioUseSSL:    v.GetBool("minio_use_ssl"),
		MinioPublicURL: v.GetString("minio_public_url"),

		AIProvider:    v.GetString("ai_provider"),
		AIModel:       v.GetString("ai_model"),
		AIImageModel:  v.GetString("ai_image_model"),
		AIMaxTokens:   v.GetInt("ai_max_tokens"),
		AILanguage:    v.GetString("ai_language"),
		OpenAIAPIKey:  v.GetString("openai_api_key"),
		OpenAIBaseURL: v.GetString("openai_base_url"),
		GeminiAPIKey:  v.GetString("gemini_api_key"),

		AMQPURL:   v.GetString("amqp_url"),
		AMQPQueue: v.GetString("amqp_queue"),

		MailerSendAPIKey: v.GetString("mailersend_api_key"),
		MailFromEmail:    v.GetString("mail_from_email"),
		MailFromName:     v.GetString("mail_from_name"),
		ContactInbox:     v.GetString("contact_inbox"),

		SessionSecret:    v.GetString("session_secret"),
		OAuthRedirectURL: v.GetString("oauth_redirect_url"),

		Port:        v.GetString("port"),
		Environment: v.GetString("environment"),
		BaseURL:     v.GetString("base_url"),
		LogLevel:    v.GetString("log_level"),
	}

	cfg.applyAIDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("supabase_storage_bucket", "ad-images")
	v.SetDefault("database_driver", DatabaseDriverPostgres)
	v.SetDefault("storage_driver", StorageDriverSupabase)
	v.SetDefault("minio_bucket", "ad-images")
	v.SetDefault("minio_use_ssl", true)
	v.SetDefault("ai_provider", AIProviderOpenAI)
	v.SetDefault("ai_max_tokens", 1000)
	v.SetDefault("ai_language", "Italian")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1/")
	v.SetDefault("amqp_queue", "ad_requests")
	v.SetDefault("mail_from_name", "ImmobiliareGPT")
	v.SetDefault("session_secret", "change-me-in-production")
	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("log_level", "info")
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}

	switch c.DatabaseDriver {
	case DatabaseDriverPostgres, DatabaseDriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DatabaseDriverPostgres, DatabaseDriverSQLite, c.DatabaseDriver)
	}

	switch c.StorageDriver {
	case StorageDriverSupabase:
	case StorageDriverMinio:
		if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when STORAGE_DRIVER=minio")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverSupabase, StorageDriverMinio, c.StorageDriver)
	}

	switch c.AIProvider {
	case AIProviderOpenAI, AIProviderGemini:
	default:
		return fmt.Errorf("AI_PROVIDER must be %q or %q, got %q", AIProviderOpenAI, AIProviderGemini, c.AIProvider)
	}

	if c.AIMaxTokens <= 0 {
		return fmt.Errorf("AI_MAX_TOKENS must be positive")
	}
	return nil
}

func (c *Config) applyAIDefaults() {
	textModel, imageModel := "gpt-4", "gpt-image-1"
	if c.AIProvider == AIProviderGemini {
		textModel, imageModel = "gemini-2.5-flash", "gemini-2.5-flash-image"
	}
	if c.AIModel == "" {
		c.AIModel = textModel
	}
	if c.AIImageModel == "" {
		c.AIImageModel = imageModel
	}
}

// AIKey returns the API key of the configured AI provider.
func (c *Config) AIKey() string {
	if c.AIProvider == AIProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
