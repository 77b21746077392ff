// Package config provides application configuration with multi-source
// priority.
//
// Sources (highest to lowest):
//  1. Environment variables (runtime override)
//  2. Config file (~/.newschat/config.yaml, or ./config.yaml)
//  3. Default values
//
// Model API keys (GEMINI_API_KEY, OPENAI_API_KEY) are read directly by
// the Genkit provider plugins, not through Viper; their presence is
// probed via ModelCredential and drives the credential-missing notice
// instead of a startup failure, since the assistant must stay usable
// (synthetic grounding, rendered notice) without any key at all.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/hojin-dev/newschat/internal/i18n"
)

// Sentinel errors for validation failures. Check with errors.Is.
var (
	// ErrInvalidProvider indicates an unsupported model provider.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidTemperature indicates a temperature out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates a max output tokens out of range.
	ErrInvalidMaxTokens = errors.New("invalid max output tokens")

	// ErrInvalidLocale indicates an unsupported default locale.
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrInvalidCharLimit indicates a per-record character limit too
	// small to hold the truncation ellipsis.
	ErrInvalidCharLimit = errors.New("invalid character limit")
)

// Model provider identifiers used in Config.Provider.
const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
)

// Default model per provider.
const (
	DefaultGoogleAIModel = "gemini-2.5-flash"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

// Config stores application configuration.
type Config struct {
	// Model configuration
	Provider        string  `mapstructure:"provider" json:"provider"`
	ModelName       string  `mapstructure:"model_name" json:"model_name"`
	Temperature     float64 `mapstructure:"temperature" json:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" json:"max_output_tokens"`

	// Conversation defaults
	Locale string `mapstructure:"locale" json:"locale"`

	// Provider chain configuration
	NewsAPIKey       string `mapstructure:"news_api_key" json:"-"`     // SENSITIVE: excluded from JSON
	GuardianAPIKey   string `mapstructure:"guardian_api_key" json:"-"` // SENSITIVE: excluded from JSON
	CascadeOnFailure bool   `mapstructure:"cascade_on_failure" json:"cascade_on_failure"`
	HTTPTimeoutMs    int    `mapstructure:"http_timeout_ms" json:"http_timeout_ms"`

	// Grounding text limits (characters per record summary)
	DisplayCharLimit int `mapstructure:"display_char_limit" json:"display_char_limit"`
	PromptCharLimit  int `mapstructure:"prompt_char_limit" json:"prompt_char_limit"`

	// Serve mode
	Addr string `mapstructure:"addr" json:"addr"`

	// Proactive model-call rate limiting (requests/sec, burst)
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" json:"rate_burst"`
}

// Load loads configuration with fail-fast validation.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}
	configDir := filepath.Join(home, ".newschat")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if cfg.ModelName == "" {
		switch cfg.Provider {
		case ProviderOpenAI:
			cfg.ModelName = DefaultOpenAIModel
		default:
			cfg.ModelName = DefaultGoogleAIModel
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("provider", ProviderGoogleAI)
	viper.SetDefault("temperature", 0.7)
	viper.SetDefault("max_output_tokens", 1000)
	viper.SetDefault("locale", string(i18n.DefaultLocale))
	viper.SetDefault("cascade_on_failure", false)
	viper.SetDefault("http_timeout_ms", 10000)
	viper.SetDefault("display_char_limit", 100)
	viper.SetDefault("prompt_char_limit", 200)
	viper.SetDefault("addr", "127.0.0.1:3400")
	viper.SetDefault("rate_limit", 10)
	viper.SetDefault("rate_burst", 30)
}

// bindEnvVariables binds environment overrides explicitly.
func bindEnvVariables() {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	// Search API credentials
	mustBind("news_api_key", "NEWS_API_KEY")
	mustBind("guardian_api_key", "GUARDIAN_API_KEY")

	// Runtime overrides
	mustBind("provider", "NEWSCHAT_PROVIDER")
	mustBind("model_name", "NEWSCHAT_MODEL_NAME")
	mustBind("locale", "NEWSCHAT_LOCALE")
	mustBind("addr", "NEWSCHAT_ADDR")
	mustBind("cascade_on_failure", "NEWSCHAT_CASCADE_ON_FAILURE")

	// NOTE: GEMINI_API_KEY and OPENAI_API_KEY are read directly by the
	// Genkit plugins; see ModelCredential.
}

// Validate performs range checks with sentinel errors.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGoogleAI, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q (supported: %s, %s)",
			ErrInvalidProvider, c.Provider, ProviderGoogleAI, ProviderOpenAI)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %v (range 0-2)", ErrInvalidTemperature, c.Temperature)
	}
	if c.MaxOutputTokens < 1 || c.MaxOutputTokens > 8192 {
		return fmt.Errorf("%w: %d (range 1-8192)", ErrInvalidMaxTokens, c.MaxOutputTokens)
	}
	if _, err := i18n.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, c.Locale)
	}
	if c.DisplayCharLimit < 4 {
		return fmt.Errorf("%w: display_char_limit %d (minimum 4)", ErrInvalidCharLimit, c.DisplayCharLimit)
	}
	if c.PromptCharLimit < 4 {
		return fmt.Errorf("%w: prompt_char_limit %d (minimum 4)", ErrInvalidCharLimit, c.PromptCharLimit)
	}
	return nil
}

// DefaultLocale returns the parsed default conversation locale.
// Validate guarantees it parses.
func (c *Config) DefaultLocale() i18n.Locale {
	loc, err := i18n.Parse(c.Locale)
	if err != nil {
		return i18n.DefaultLocale
	}
	return loc
}

// QualifiedModelName returns the provider-qualified model identifier
// Genkit expects, e.g. "googleai/gemini-2.5-flash".
func (c *Config) QualifiedModelName() string {
	return c.Provider + "/" + c.ModelName
}

// ModelCredential returns the model API key for the configured
// provider, or "" when none is set. An absent key is not a
// configuration error: completions degrade to a rendered notice.
func (c *Config) ModelCredential() string {
	switch c.Provider {
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		if k := os.Getenv("GEMINI_API_KEY"); k != "" {
			return k
		}
		return os.Getenv("GOOGLE_API_KEY")
	}
}
