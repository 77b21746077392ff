// Package chat issues grounded chat completions.
//
// The Client computes: it assembles the outbound message sequence
// (system grounding first, then the conversation history oldest first)
// and performs a single model call. It never mutates session state;
// the caller appends the returned turn through the session's
// epoch-guarded method.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"

	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/log"
	"github.com/hojin-dev/newschat/internal/session"
)

// Default generation parameters.
const (
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 1000
)

// Sentinel errors for completion outcomes. Both are accompanied by a
// renderable notice turn; check with errors.Is.
var (
	// ErrCredentialMissing indicates no model API key is configured.
	// The returned turn carries a locally composed notice, not a
	// vendor error.
	ErrCredentialMissing = errors.New("model credential missing")

	// ErrUpstream indicates the model call itself failed (timeout,
	// rate limit, malformed response). The returned turn carries a
	// locale-appropriate error message; the raw vendor error is only
	// logged.
	ErrUpstream = errors.New("model call failed")
)

// Config contains all parameters for the completion client.
type Config struct {
	Genkit *genkit.Genkit
	Logger log.Logger

	// ModelName is the provider-qualified model identifier
	// (e.g. "googleai/gemini-2.5-flash", "openai/gpt-4o-mini").
	ModelName string

	// HasCredential reports whether a usable model API key was found
	// at startup. When false, Complete short-circuits to the
	// credential-missing notice without ever calling the vendor.
	HasCredential bool

	// Temperature and MaxOutputTokens default to DefaultTemperature
	// and DefaultMaxOutputTokens when zero.
	Temperature     float64
	MaxOutputTokens int

	// RateLimiter optionally throttles model calls. Nil disables
	// proactive rate limiting.
	RateLimiter *rate.Limiter
}

// validate checks required dependencies.
func (cfg Config) validate() error {
	if cfg.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.ModelName == "" {
		return errors.New("model name is required")
	}
	return nil
}

// Client performs grounded completions. Configuration is captured
// immutably at construction; the client is safe for concurrent use
// across sessions.
type Client struct {
	g             *genkit.Genkit
	logger        log.Logger
	modelName     string
	hasCredential bool
	temperature   float64
	maxTokens     int
	limiter       *rate.Limiter
}

// New creates a completion client.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxOutputTokens
	}

	return &Client{
		g:             cfg.Genkit,
		logger:        cfg.Logger,
		modelName:     cfg.ModelName,
		hasCredential: cfg.HasCredential,
		temperature:   temperature,
		maxTokens:     maxTokens,
		limiter:       cfg.RateLimiter,
	}, nil
}

// Complete issues one grounded completion for the session's current
// history. systemText is the full system instruction (persona plus
// grounding text) and is always the first message; the history follows
// oldest first, ending with the just-appended user turn.
//
// The returned turn is always renderable. On failure it carries a
// locally composed, locale-appropriate notice and the error is the
// matching sentinel: ErrCredentialMissing is a configuration
// condition, never an upstream one. A single attempt is made; retry
// policy belongs to the caller.
func (c *Client) Complete(ctx context.Context, sess *session.Session, systemText string) (session.ChatTurn, error) {
	loc := sess.Locale()

	if !c.hasCredential {
		return notice(loc, i18n.KeyNoticeNoModelKey), ErrCredentialMissing
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.logger.Warn("rate limiter wait aborted", "error", err)
			return notice(loc, i18n.KeyNoticeUpstream), fmt.Errorf("%w: %w", ErrUpstream, err)
		}
	}

	history := sess.History()
	messages := make([]*ai.Message, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case session.RoleUser:
			messages = append(messages, ai.NewUserMessage(ai.NewTextPart(turn.Content)))
		case session.RoleAssistant:
			messages = append(messages, ai.NewModelMessage(ai.NewTextPart(turn.Content)))
		}
	}

	c.logger.Debug("requesting completion",
		"session_id", sess.ID(),
		"model", c.modelName,
		"history_turns", len(messages))

	resp, err := genkit.Generate(ctx, c.g,
		ai.WithModelName(c.modelName),
		ai.WithSystem(systemText),
		ai.WithMessages(messages...),
		ai.WithConfig(&ai.GenerationCommonConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		}),
	)
	if err != nil {
		c.logger.Error("model call failed",
			"session_id", sess.ID(),
			"model", c.modelName,
			"error", err)
		return notice(loc, i18n.KeyNoticeUpstream), fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		// An empty model output still has to render as something.
		c.logger.Warn("model returned empty response", "session_id", sess.ID())
		text = i18n.T(loc, i18n.KeyNoticeUpstream)
	}

	return session.ChatTurn{Role: session.RoleAssistant, Content: text}, nil
}

// notice builds a renderable assistant turn from a message key.
func notice(loc i18n.Locale, key i18n.Key) session.ChatTurn {
	return session.ChatTurn{Role: session.RoleAssistant, Content: i18n.T(loc, key)}
}
