package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	LLM        LLMConfig
	Rainforest RainforestConfig
	Makeup     MakeupConfig
	Search     SearchConfig
	Catalog    CatalogConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	Version        string        `mapstructure:"version"`
}

// ProviderConfig holds one language model provider's settings
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// LLMConfig holds language model configuration
type LLMConfig struct {
	Claude   ProviderConfig `mapstructure:"claude"`
	OpenAI   ProviderConfig `mapstructure:"openai"`
	Gemini   ProviderConfig `mapstructure:"gemini"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	RetryMax int            `mapstructure:"retry_max"`
	// ProviderOrder is the fallback chain, first entry tried first
	ProviderOrder []string `mapstructure:"provider_order"`
}

// RainforestConfig holds Rainforest API configuration
type RainforestConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	AmazonDomain  string        `mapstructure:"amazon_domain"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryMax      int           `mapstructure:"retry_max"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
}

// MakeupConfig holds Makeup API configuration
type MakeupConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	RetryMax int           `mapstructure:"retry_max"`
}

// PriceBand is the fallback price range for one source
type PriceBand struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// SearchConfig holds search pipeline configuration
type SearchConfig struct {
	DefaultLimit   int           `mapstructure:"default_limit"`
	MaxLimit       int           `mapstructure:"max_limit"`
	RemoteLimit    int           `mapstructure:"remote_limit"`
	GlobalSentinel string        `mapstructure:"global_sentinel"`
	SourceTimeout  time.Duration `mapstructure:"source_timeout"`
	// LLMProducts adds language model product lists to search fan-out
	LLMProducts     bool                 `mapstructure:"llm_products"`
	CategoryAliases map[string][]string  `mapstructure:"category_aliases"`
	PriceBands      map[string]PriceBand `mapstructure:"price_bands"`
}

// CatalogConfig holds local catalog configuration
type CatalogConfig struct {
	Seed                 uint64 `mapstructure:"seed"`
	GeneratedPerCategory int    `mapstructure:"generated_per_category"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type      string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
	// DegradedTTL applies when a remote source failed while building the result
	DegradedTTL time.Duration `mapstructure:"degraded_ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// PerIP is requests per minute per client address; 0 disables limiting
	PerIP int `mapstructure:"per_ip"`
	Burst int `mapstructure:"burst"`
}

// Known language model providers
var knownProviders = []string{"claude", "openai", "gemini"}

// envAliases binds conventional unprefixed variable names next to the BEAUTYAI_ ones
var envAliases = map[string][]string{
	"server.port":            {"PORT"},
	"server.environment":     {"APP_ENV"},
	"server.allowed_origins": {"ALLOWED_ORIGINS"},
	"llm.claude.api_key":     {"ANTHROPIC_API_KEY", "CLAUDE_API_KEY"},
	"llm.openai.api_key":     {"OPENAI_API_KEY"},
	"llm.gemini.api_key":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"rainforest.api_key":     {"RAINFOREST_API_KEY"},
	"cache.redis_url":        {"REDIS_URL"},
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/beautyai/")

	// Environment variable settings
	v.SetEnvPrefix("BEAUTYAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvAliases(v); err != nil {
		return nil, err
	}

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	normalize(&config)

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func bindEnvAliases(v *viper.Viper) error {
	for key, names := range envAliases {
		prefixed := "BEAUTYAI_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return fmt.Errorf("binding env for %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "exp://*"})
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.version", "1.0.0")

	// LLM defaults
	v.SetDefault("llm.timeout", "15s")
	v.SetDefault("llm.retry_max", 1)
	v.SetDefault("llm.provider_order", knownProviders)

	// Rainforest defaults
	v.SetDefault("rainforest.base_url", "https://api.rainforestapi.com")
	v.SetDefault("rainforest.amazon_domain", "amazon.com")
	v.SetDefault("rainforest.timeout", "10s")
	v.SetDefault("rainforest.retry_max", 2)
	v.SetDefault("rainforest.rate_per_second", 2)

	// Makeup API defaults
	v.SetDefault("makeup.enabled", false)
	v.SetDefault("makeup.base_url", "https://makeup-api.herokuapp.com")
	v.SetDefault("makeup.timeout", "10s")
	v.SetDefault("makeup.retry_max", 1)

	// Search defaults
	v.SetDefault("search.default_limit", 20)
	v.SetDefault("search.max_limit", 100)
	v.SetDefault("search.remote_limit", 10)
	v.SetDefault("search.global_sentinel", "global")
	v.SetDefault("search.source_timeout", "12s")
	v.SetDefault("search.llm_products", false)

	// Catalog defaults
	v.SetDefault("catalog.seed", 42)
	v.SetDefault("catalog.generated_per_category", 10)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.key_prefix", "beautyai:")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.degraded_ttl", "30s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)
}

// normalize cleans values that commonly arrive untidy from the environment
func normalize(config *Config) {
	config.Cache.Type = strings.ToLower(strings.TrimSpace(config.Cache.Type))

	origins := make([]string, 0, len(config.Server.AllowedOrigins))
	for _, o := range config.Server.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	config.Server.AllowedOrigins = origins

	order := make([]string, 0, len(config.LLM.ProviderOrder))
	for _, p := range config.LLM.ProviderOrder {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			order = append(order, p)
		}
	}
	config.LLM.ProviderOrder = order
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis' (set REDIS_URL)")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got: %s", config.Cache.TTL)
	}

	if config.Cache.DegradedTTL <= 0 || config.Cache.DegradedTTL > config.Cache.TTL {
		return fmt.Errorf("cache degraded_ttl must be positive and at most ttl, got: %s", config.Cache.DegradedTTL)
	}

	timeouts := map[string]time.Duration{
		"llm.timeout":           config.LLM.Timeout,
		"rainforest.timeout":    config.Rainforest.Timeout,
		"makeup.timeout":        config.Makeup.Timeout,
		"search.source_timeout": config.Search.SourceTimeout,
	}
	for name, d := range timeouts {
		if d < time.Second || d > time.Minute {
			return fmt.Errorf("%s must be between 1s and 60s, got: %s", name, d)
		}
	}

	if config.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request timeout must be positive, got: %s", config.Server.RequestTimeout)
	}

	if config.Search.DefaultLimit <= 0 || config.Search.MaxLimit <= 0 || config.Search.RemoteLimit <= 0 {
		return fmt.Errorf("search limits must be positive")
	}

	if config.Search.DefaultLimit > config.Search.MaxLimit {
		return fmt.Errorf("search default limit %d exceeds max limit %d", config.Search.DefaultLimit, config.Search.MaxLimit)
	}

	for _, p := range config.LLM.ProviderOrder {
		if !slices.Contains(knownProviders, p) {
			return fmt.Errorf("unknown llm provider %q (want one of %s)", p, strings.Join(knownProviders, ", "))
		}
	}

	for source, band := range config.Search.PriceBands {
		if band.Min < 0 || band.Max <= band.Min {
			return fmt.Errorf("price band for %s must satisfy 0 <= min < max", source)
		}
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
