// Package config loads jobwise settings from an optional config file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ayushk-1801/jobwise/internal/embedding"
	"github.com/ayushk-1801/jobwise/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. JOBWISE_SERVER_PORT.
const EnvPrefix = "JOBWISE"

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	UploadDir       string        `mapstructure:"upload_dir"`
	MaxUploadMB     int           `mapstructure:"max_upload_mb" validate:"min=1,max=100"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// LLMConfig configures the extraction model.
type LLMConfig struct {
	APIKey        string  `mapstructure:"api_key"`
	LiteModel     string  `mapstructure:"lite_model"`
	StandardModel string  `mapstructure:"standard_model" validate:"required"`
	AdvancedModel string  `mapstructure:"advanced_model"`
	Temperature   float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// EmbeddingConfig configures the encoder behind the facet comparisons.
type EmbeddingConfig struct {
	Backend   string        `mapstructure:"backend" validate:"oneof=tei gemini"`
	Endpoint  string        `mapstructure:"endpoint" validate:"omitempty,url"`
	Model     string        `mapstructure:"model"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"min=0"`
	MaxTokens int           `mapstructure:"max_tokens" validate:"min=1,max=8192"`
}

// MatchingConfig tunes the matching pipeline.
type MatchingConfig struct {
	// UseExtractedMinYears falls back to the minimum years read from the job
	// description when a request carries none.
	UseExtractedMinYears bool `mapstructure:"use_extracted_min_years"`
}

// RateLimitConfig configures per-client request limiting.
type RateLimitConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute" validate:"min=1"`
	Burst             int      `mapstructure:"burst" validate:"min=1"`
	Whitelist         []string `mapstructure:"whitelist" validate:"dive,ip"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers every key with its default so environment overrides
// resolve for all of them.
func SetDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	embDefaults := embedding.DefaultConfig()

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.upload_dir", "")
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.lite_model", llmDefaults.GetModel(llm.TierLite))
	v.SetDefault("llm.standard_model", llmDefaults.GetModel(llm.TierStandard))
	v.SetDefault("llm.advanced_model", llmDefaults.GetModel(llm.TierAdvanced))
	v.SetDefault("llm.temperature", llmDefaults.Temperature)

	v.SetDefault("embedding.backend", string(embDefaults.Backend))
	v.SetDefault("embedding.endpoint", embDefaults.Endpoint)
	v.SetDefault("embedding.model", embDefaults.Model)
	v.SetDefault("embedding.api_key", "")
	v.SetDefault("embedding.timeout", embDefaults.Timeout)
	v.SetDefault("embedding.max_tokens", embedding.MaxTokens)

	v.SetDefault("matching.use_extracted_min_years", false)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 30)
	v.SetDefault("ratelimit.burst", 5)
	v.SetDefault("ratelimit.whitelist", []string{})

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads configuration into a Config. An explicit path must exist;
// without one, jobwise.yaml (or .json) in the working directory is used when
// present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The Gemini key is commonly exported under its own name.
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding llm api key: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("jobwise")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Embedding.Backend == string(embedding.BackendGemini) {
		if cfg.Embedding.APIKey == "" {
			cfg.Embedding.APIKey = cfg.LLM.APIKey
		}
		// The default model names a TEI checkpoint; let the Gemini encoder
		// pick its own.
		if cfg.Embedding.Model == embedding.DefaultConfig().Model {
			cfg.Embedding.Model = ""
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Embedding.Backend == string(embedding.BackendTEI) && c.Embedding.Endpoint == "" {
		return errors.New("config error: embedding.endpoint is required for the tei backend")
	}
	return nil
}

// LLMClientConfig converts the LLM section for llm.NewClient.
func (c *Config) LLMClientConfig() *llm.Config {
	cfg := &llm.Config{
		Provider:    llm.ProviderGemini,
		Models:      map[llm.ModelTier]string{},
		Temperature: c.LLM.Temperature,
	}
	for tier, model := range map[llm.ModelTier]string{
		llm.TierLite:     c.LLM.LiteModel,
		llm.TierStandard: c.LLM.StandardModel,
		llm.TierAdvanced: c.LLM.AdvancedModel,
	} {
		if model != "" {
			cfg.Models[tier] = model
		}
	}
	return cfg
}

// EncoderConfig converts the embedding section for embedding.NewEncoder.
func (c *Config) EncoderConfig() *embedding.Config {
	return &embedding.Config{
		Backend:  embedding.Backend(c.Embedding.Backend),
		Endpoint: c.Embedding.Endpoint,
		Model:    c.Embedding.Model,
		APIKey:   c.Embedding.APIKey,
		Timeout:  c.Embedding.Timeout,
	}
}

// MaxUploadBytes is the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}
