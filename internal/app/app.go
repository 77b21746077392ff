// Package app provides application initialization and dependency wiring.
//
// App is the container that holds every initialized component: Genkit,
// the session manager, the grounding provider chain, and the chat
// client. Both the CLI and the HTTP server build an App through Setup
// and drive conversations through the methods in runtime.go.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"golang.org/x/time/rate"

	"github.com/hojin-dev/newschat/internal/chat"
	"github.com/hojin-dev/newschat/internal/config"
	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/log"
	"github.com/hojin-dev/newschat/internal/provider"
	"github.com/hojin-dev/newschat/internal/session"
)

// App is the core application container.
type App struct {
	Config   *config.Config
	Logger   log.Logger
	Genkit   *genkit.Genkit
	Sessions *session.Manager
	Chain    *provider.Chain
	Chat     *chat.Client
}

// Setup creates and initializes the application.
//
// Message tables and destination fact sheets are validated up front so a
// missing translation surfaces at startup rather than mid-conversation.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	if err := i18n.Validate(); err != nil {
		return nil, fmt.Errorf("validating message catalog: %w", err)
	}
	if err := grounding.ValidateDestinations(); err != nil {
		return nil, fmt.Errorf("validating destination fact sheets: %w", err)
	}

	g, hasCredential, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	chatClient, err := chat.New(chat.Config{
		Genkit:          g,
		Logger:          logger,
		ModelName:       cfg.QualifiedModelName(),
		HasCredential:   hasCredential,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		RateLimiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat client: %w", err)
	}

	chain, err := provideChain(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating provider chain: %w", err)
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Genkit:   g,
		Sessions: session.NewManager(cfg.DefaultLocale()),
		Chain:    chain,
		Chat:     chatClient,
	}, nil
}

// provideGenkit initializes Genkit with the configured model provider.
//
// When no model API key is present, Genkit is initialized without a
// provider plugin and the second return value is false: the assistant
// stays up and completions render a localized notice instead. The
// plugins panic on a missing key, so this branch must come first.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, bool, error) {
	if cfg.ModelCredential() == "" {
		logger.Warn("no model API key found, completions will be unavailable",
			"provider", cfg.Provider)
		g := genkit.Init(ctx)
		if g == nil {
			return nil, false, errors.New("initializing genkit")
		}
		return g, false, nil
	}

	var g *genkit.Genkit
	switch cfg.Provider {
	case config.ProviderOpenAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
	default:
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	}
	if g == nil {
		return nil, false, fmt.Errorf("initializing genkit with %s provider", cfg.Provider)
	}

	logger.Info("initialized genkit", "provider", cfg.Provider, "model", cfg.ModelName)
	return g, true, nil
}

// provideChain assembles the grounding provider chain in priority
// order. News providers are credential-gated; the synthetic provider is
// always available so a keyless deployment still grounds conversations.
func provideChain(cfg *config.Config, logger log.Logger) (*provider.Chain, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond,
	}

	return provider.NewChain(
		provider.Config{CascadeOnFailure: cfg.CascadeOnFailure},
		logger,
		provider.NewNewsAPI(cfg.NewsAPIKey, "", httpClient, logger),
		provider.NewGuardian(cfg.GuardianAPIKey, "", httpClient, logger),
		provider.NewSynthetic(),
		provider.NewTravel(),
	)
}
