// Package config loads the assessor configuration from files, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/assessment-engine/internal/interview"
	"github.com/jonathan/assessment-engine/internal/llm"
	"github.com/jonathan/assessment-engine/internal/ranking"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the assessor.
	EnvPrefix = "ASSESSOR"

	// DefaultConfigName is looked up in the working directory when no file is given.
	DefaultConfigName = "assessor"

	defaultPort     = 8080
	defaultCacheTTL = 24 * time.Hour
)

// Linguistic backends.
const (
	BackendLocal     = "local"
	BackendEmbedding = "embedding"
	BackendNone      = "none"
)

// Config is the full assessor configuration.
type Config struct {
	Weights      WeightsConfig    `mapstructure:"weights" json:"weights"`
	SkillsFile   string           `mapstructure:"skills_file" json:"skills_file,omitempty"`
	QuestionBank string           `mapstructure:"question_bank" json:"question_bank,omitempty"`
	Linguistic   LinguisticConfig `mapstructure:"linguistic" json:"linguistic"`
	Cache        CacheConfig      `mapstructure:"cache" json:"cache"`
	DatabaseURL  string           `mapstructure:"database_url" json:"-"`
	GeminiAPIKey string           `mapstructure:"gemini_api_key" json:"-"`
	Server       ServerConfig     `mapstructure:"server" json:"server"`
}

// WeightsConfig holds the scoring weights of both aggregators.
type WeightsConfig struct {
	Resume    ranking.Weights   `mapstructure:"resume" json:"resume"`
	Interview interview.Weights `mapstructure:"interview" json:"interview"`
}

// LinguisticConfig selects the language backend.
type LinguisticConfig struct {
	Backend        string `mapstructure:"backend" json:"backend"`
	EmbeddingModel string `mapstructure:"embedding_model" json:"embedding_model"`
}

// CacheConfig configures the embedding vector cache.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url" json:"-"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port               int    `mapstructure:"port" json:"port"`
	JWTSecret          string `mapstructure:"jwt_secret" json:"-"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours" json:"jwt_expiration_hours"`
}

// envAliases binds keys to the unprefixed variable names used by the surrounding tooling.
var envAliases = map[string]string{
	"database_url":                "DATABASE_URL",
	"gemini_api_key":              "GEMINI_API_KEY",
	"cache.redis_url":             "REDIS_URL",
	"server.jwt_secret":           "JWT_SECRET",
	"server.jwt_expiration_hours": "JWT_EXPIRATION_HOURS",
}

// New returns a viper instance with defaults and environment bindings applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		// Errors only occur for an empty key.
		_ = v.BindEnv(key, envKey, alias)
	}
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	resume := ranking.DefaultWeights()
	v.SetDefault("weights.resume.required", resume.Required)
	v.SetDefault("weights.resume.preferred", resume.Preferred)
	v.SetDefault("weights.resume.experience", resume.Experience)
	v.SetDefault("weights.resume.education", resume.Education)

	iw := interview.DefaultWeights()
	v.SetDefault("weights.interview.relevance", iw.Relevance)
	v.SetDefault("weights.interview.completeness", iw.Completeness)
	v.SetDefault("weights.interview.clarity", iw.Clarity)
	v.SetDefault("weights.interview.technical_accuracy", iw.TechnicalAccuracy)

	v.SetDefault("skills_file", "")
	v.SetDefault("question_bank", "")
	v.SetDefault("linguistic.backend", BackendLocal)
	v.SetDefault("linguistic.embedding_model", llm.DefaultEmbeddingModel)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("database_url", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.jwt_expiration_hours", defaultExpirationHours)
}

// Load reads the configuration. When path is empty an optional assessor.yaml in the
// working directory is used.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks weights, the backend name and numeric ranges.
func (c *Config) Validate() error {
	if err := c.Weights.Resume.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.Weights.Interview.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Linguistic.Backend {
	case BackendLocal, BackendNone:
	case BackendEmbedding:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: linguistic backend %q requires GEMINI_API_KEY", BackendEmbedding)
		}
	default:
		return fmt.Errorf("config error: unknown linguistic backend %q", c.Linguistic.Backend)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config error: 'cache.ttl' must be non-negative")
	}
	return nil
}

// JWT returns the token configuration, or nil when no secret is configured.
func (c *Config) JWT() (*JWTConfig, error) {
	if c.Server.JWTSecret == "" {
		return nil, nil
	}
	return NewJWTConfig(c.Server.JWTSecret, c.Server.JWTExpirationHours)
}
