package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/session"
)

// syntheticBase is the fixed publication time of the first synthetic
// record; each following record is 30 minutes older, so ordering is
// stable and record sequences are byte-identical across calls.
var syntheticBase = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// syntheticBodyKeys rotate across the fabricated summaries.
var syntheticBodyKeys = []i18n.Key{
	i18n.KeySyntheticBody1,
	i18n.KeySyntheticBody2,
	i18n.KeySyntheticBody3,
}

// syntheticBodyLimit truncates the rotating body text inside each
// fabricated summary, after the per-record lead sentence.
const syntheticBodyLimit = 83

// Synthetic fabricates placeholder records when no search credential
// is configured. It is a pure function of the query key: the same key
// always yields the same MaxPageSize records in the same order, which
// keeps tests reproducible without network access.
type Synthetic struct{}

// NewSynthetic creates the fallback provider.
func NewSynthetic() *Synthetic { return &Synthetic{} }

// Name implements Provider.
func (s *Synthetic) Name() string { return "synthetic" }

// Available implements Provider: always available for news keys.
func (s *Synthetic) Available(key session.QueryKey) bool {
	return key.Mode == session.ModeNews
}

// Fetch implements Provider. It never fails.
func (s *Synthetic) Fetch(_ context.Context, key session.QueryKey) ([]grounding.Record, error) {
	loc := key.Locale
	records := make([]grounding.Record, 0, MaxPageSize)
	for i := 0; i < MaxPageSize; i++ {
		body := i18n.Sprintf(loc, syntheticBodyKeys[i%len(syntheticBodyKeys)], key.Keyword)
		records = append(records, grounding.Record{
			Title: i18n.Sprintf(loc, i18n.KeySyntheticTitle, key.Keyword, i+1),
			Summary: i18n.Sprintf(loc, i18n.KeySyntheticLead, i+1, key.Keyword) +
				grounding.Truncate(body, syntheticBodyLimit),
			SourceName:  i18n.Sprintf(loc, i18n.KeySyntheticSource, i%3+1),
			URL:         fmt.Sprintf("https://example.com/news%d", i+1),
			ImageURL:    fmt.Sprintf("https://via.placeholder.com/300x200?text=News+%d", i+1),
			PublishedAt: syntheticBase.Add(-time.Duration(i) * 30 * time.Minute),
		})
	}
	return records, nil
}
