package provider

import (
	"context"
	"fmt"

	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/session"
)

// Travel serves travel-mode keys from the curated destination dataset.
// No credential is involved; the data ships with the binary.
type Travel struct{}

// NewTravel creates the curated travel provider.
func NewTravel() *Travel { return &Travel{} }

// Name implements Provider.
func (t *Travel) Name() string { return "travel" }

// Available implements Provider: travel-mode keys only.
func (t *Travel) Available(key session.QueryKey) bool {
	return key.Mode == session.ModeTravel
}

// Fetch implements Provider. Records are localized to the key's
// locale: one per fact category in a fixed order.
func (t *Travel) Fetch(_ context.Context, key session.QueryKey) ([]grounding.Record, error) {
	records, ok := grounding.TravelRecords(key.Destination, key.Locale)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDestination, key.Destination)
	}
	return records, nil
}
