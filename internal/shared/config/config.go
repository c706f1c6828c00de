package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"resume-analyzer/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	PublicBaseURL   string
	CORSAllowOrigin []string
	LogLevel        string
	LogFormat       string
	DatabaseURL     string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	S3PresignTTL    time.Duration

	LLMProvider        string
	LLMModel           string
	LLMTimeout         time.Duration
	GeminiAPIKey       string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	HuggingFaceAPIKey  string
	HuggingFaceBaseURL string
	EnrichmentTimeout  time.Duration
	SkillMatchMode     string

	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	EnrichmentCacheTTL time.Duration

	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURL  string
	UIRedirectURL      string

	AnalyzeRateLimit float64
	AnalyzeBurst     int

	// MetricsToken, when set, is the bearer token required on GET /metrics.
	MetricsToken string
}

// Load reads configuration from the environment with sensible defaults.
// Local .env files are loaded first for dev convenience.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("S3_PRESIGN_TTL", "15m")
	v.SetDefault("LLM_PROVIDER", "none")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("ENRICHMENT_TIMEOUT", "8s")
	v.SetDefault("SKILL_MATCH_MODE", "substring")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ENRICHMENT_CACHE_TTL", "24h")
	v.SetDefault("ANALYZE_RATE_LIMIT", 0.2)
	v.SetDefault("ANALYZE_BURST", 5)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	logFormat := strings.TrimSpace(v.GetString("LOG_FORMAT"))
	if logFormat == "" {
		logFormat = "console"
		if env == "production" || env == "staging" {
			logFormat = "json"
		}
	}

	return Config{
		Port:            v.GetString("PORT"),
		Env:             env,
		PublicBaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("PUBLIC_BASE_URL")), "/"),
		CORSAllowOrigin: splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       logFormat,
		DatabaseURL:     dbURL,

		ObjectStoreType: normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:   v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:       v.GetString("AWS_REGION"),
		S3Bucket:        v.GetString("S3_BUCKET"),
		S3Prefix:        v.GetString("S3_PREFIX"),
		SSEKMSKeyID:     v.GetString("SSE_KMS_KEY_ID"),
		S3PresignTTL:    v.GetDuration("S3_PRESIGN_TTL"),

		LLMProvider:        normalizeProvider(v.GetString("LLM_PROVIDER")),
		LLMModel:           strings.TrimSpace(v.GetString("LLM_MODEL")),
		LLMTimeout:         v.GetDuration("LLM_TIMEOUT"),
		GeminiAPIKey:       strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		OpenAIAPIKey:       strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		OpenAIBaseURL:      strings.TrimSpace(v.GetString("OPENAI_BASE_URL")),
		HuggingFaceAPIKey:  strings.TrimSpace(v.GetString("HUGGINGFACE_API_KEY")),
		HuggingFaceBaseURL: strings.TrimSpace(v.GetString("HUGGINGFACE_BASE_URL")),
		EnrichmentTimeout:  v.GetDuration("ENRICHMENT_TIMEOUT"),
		SkillMatchMode:     v.GetString("SKILL_MATCH_MODE"),

		RedisAddr:          strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		EnrichmentCacheTTL: v.GetDuration("ENRICHMENT_CACHE_TTL"),

		JWTSecret:          strings.TrimSpace(v.GetString("JWT_SECRET")),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		GitHubClientID:     v.GetString("GITHUB_CLIENT_ID"),
		GitHubClientSecret: v.GetString("GITHUB_CLIENT_SECRET"),
		GitHubRedirectURL:  v.GetString("GITHUB_REDIRECT_URL"),
		UIRedirectURL:      v.GetString("UI_REDIRECT_URL"),

		AnalyzeRateLimit: v.GetFloat64("ANALYZE_RATE_LIMIT"),
		AnalyzeBurst:     v.GetInt("ANALYZE_BURST"),

		MetricsToken: strings.TrimSpace(v.GetString("METRICS_TOKEN")),
	}
}

// DevLike reports whether the environment is a developer setup.
func (c Config) DevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	case "openai":
		return "openai"
	case "huggingface", "hf":
		return "huggingface"
	default:
		return "none"
	}
}
