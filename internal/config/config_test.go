package config

import (
	"errors"
	"testing"

	"github.com/hojin-dev/newschat/internal/i18n"
)

// validConfig returns a config that passes Validate.
func validConfig() Config {
	return Config{
		Provider:         ProviderGoogleAI,
		ModelName:        DefaultGoogleAIModel,
		Temperature:      0.7,
		MaxOutputTokens:  1000,
		Locale:           "ko",
		DisplayCharLimit: 100,
		PromptCharLimit:  200,
		Addr:             "127.0.0.1:3400",
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"unknown provider", func(c *Config) { c.Provider = "anthropic" }, ErrInvalidProvider},
		{"empty provider", func(c *Config) { c.Provider = "" }, ErrInvalidProvider},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }, ErrInvalidTemperature},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, ErrInvalidTemperature},
		{"zero max tokens", func(c *Config) { c.MaxOutputTokens = 0 }, ErrInvalidMaxTokens},
		{"excessive max tokens", func(c *Config) { c.MaxOutputTokens = 100000 }, ErrInvalidMaxTokens},
		{"unknown locale", func(c *Config) { c.Locale = "fr" }, ErrInvalidLocale},
		{"display limit below ellipsis", func(c *Config) { c.DisplayCharLimit = 3 }, ErrInvalidCharLimit},
		{"prompt limit below ellipsis", func(c *Config) { c.PromptCharLimit = 0 }, ErrInvalidCharLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultLocale(t *testing.T) {
	cfg := validConfig()
	if got := cfg.DefaultLocale(); got != i18n.LocaleKO {
		t.Errorf("DefaultLocale() = %q, want ko", got)
	}

	cfg.Locale = "english"
	if got := cfg.DefaultLocale(); got != i18n.LocaleEN {
		t.Errorf("DefaultLocale() = %q, want en", got)
	}
}

func TestQualifiedModelName(t *testing.T) {
	cfg := validConfig()
	if got := cfg.QualifiedModelName(); got != "googleai/"+DefaultGoogleAIModel {
		t.Errorf("QualifiedModelName() = %q", got)
	}

	cfg.Provider = ProviderOpenAI
	cfg.ModelName = "gpt-4o-mini"
	if got := cfg.QualifiedModelName(); got != "openai/gpt-4o-mini" {
		t.Errorf("QualifiedModelName() = %q", got)
	}
}

func TestModelCredential(t *testing.T) {
	t.Run("googleai reads gemini key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "g-key")
		t.Setenv("GOOGLE_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "o-key")

		cfg := validConfig()
		if got := cfg.ModelCredential(); got != "g-key" {
			t.Errorf("ModelCredential() = %q, want gemini key", got)
		}
	})

	t.Run("googleai falls back to google key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GOOGLE_API_KEY", "fallback")

		cfg := validConfig()
		if got := cfg.ModelCredential(); got != "fallback" {
			t.Errorf("ModelCredential() = %q, want fallback key", got)
		}
	})

	t.Run("openai reads openai key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "o-key")
		t.Setenv("GEMINI_API_KEY", "g-key")

		cfg := validConfig()
		cfg.Provider = ProviderOpenAI
		if got := cfg.ModelCredential(); got != "o-key" {
			t.Errorf("ModelCredential() = %q, want openai key", got)
		}
	})

	t.Run("absent key is empty, not an error", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GOOGLE_API_KEY", "")

		cfg := validConfig()
		if got := cfg.ModelCredential(); got != "" {
			t.Errorf("ModelCredential() = %q, want empty", got)
		}
	})
}
