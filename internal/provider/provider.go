// Package provider resolves grounding records for a query key through
// an ordered, credential-gated chain of data sources.
//
// Selection is credential-driven, not failure-driven: a provider whose
// credential is absent is skipped entirely, and by default a provider
// that is attempted and fails yields a warning plus an empty result
// set instead of cascading to the next source. The synthetic fallback
// is reached only through credential absence. Cascade-on-failure can
// be enabled explicitly via Config.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/log"
	"github.com/hojin-dev/newschat/internal/session"
)

// MaxPageSize is the hard cap on records a provider may return per
// call. Providers with a configurable page size clamp to it.
const MaxPageSize = 10

// Sentinel errors. Check with errors.Is.
var (
	// ErrFetch indicates a transport, status, or decode failure in an
	// attempted provider. The chain converts it to a user-visible
	// warning with an empty record set; it is never fatal.
	ErrFetch = errors.New("provider fetch failed")

	// ErrUnknownDestination indicates a travel query for a destination
	// the curated dataset does not know.
	ErrUnknownDestination = errors.New("unknown destination")
)

// Provider is one data source in the chain.
type Provider interface {
	// Name identifies the provider in logs and warnings.
	Name() string

	// Available reports whether the provider can serve this key at
	// all: credential present and query mode supported. Unavailable
	// providers are skipped, not attempted.
	Available(key session.QueryKey) bool

	// Fetch returns at most MaxPageSize normalized records for the
	// key, in ranked order (most relevant first).
	Fetch(ctx context.Context, key session.QueryKey) ([]grounding.Record, error)
}

// Config controls chain behavior.
type Config struct {
	// CascadeOnFailure makes the chain fall through to the next
	// eligible provider when an attempted provider errors or returns
	// no records. Off by default: a failed provider yields a warning
	// and an empty set, matching the credential-gated design.
	CascadeOnFailure bool
}

// Chain queries providers in fixed priority order.
type Chain struct {
	providers []Provider
	cascade   bool
	logger    log.Logger
}

// NewChain builds a chain over the given providers, tried in argument
// order.
func NewChain(cfg Config, logger log.Logger, providers ...Provider) (*Chain, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if len(providers) == 0 {
		return nil, errors.New("at least one provider is required")
	}
	return &Chain{
		providers: providers,
		cascade:   cfg.CascadeOnFailure,
		logger:    logger,
	}, nil
}

// Fetch resolves records for the key. A non-nil error is a renderable
// warning condition (wrapped ErrFetch or ErrUnknownDestination) and is
// always accompanied by an empty record slice; it is never fatal and
// the conversation may continue ungrounded.
func (c *Chain) Fetch(ctx context.Context, key session.QueryKey) ([]grounding.Record, error) {
	var lastErr error
	attempted := false

	for _, p := range c.providers {
		if !p.Available(key) {
			continue
		}
		attempted = true

		records, err := p.Fetch(ctx, key)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", p.Name(), err)
			c.logger.Warn("provider fetch failed",
				"provider", p.Name(),
				"mode", key.Mode,
				"error", err)
			if c.cascade {
				continue
			}
			return nil, lastErr
		}
		if len(records) == 0 && c.cascade {
			c.logger.Debug("provider returned no records, cascading",
				"provider", p.Name())
			continue
		}

		if len(records) > MaxPageSize {
			records = records[:MaxPageSize]
		}
		c.logger.Debug("provider fetch succeeded",
			"provider", p.Name(),
			"records", len(records))
		return records, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	if !attempted {
		return nil, fmt.Errorf("%w: no provider available for mode %q", ErrFetch, key.Mode)
	}
	return nil, nil
}
