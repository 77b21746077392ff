// Package grounding holds the normalized fact model and the logic that
// turns fetched records into the bounded text block injected into a
// model call as a system instruction.
package grounding

import "time"

// Record is one normalized, retrievable fact unit: a news article or a
// destination fact sheet entry. Records are immutable once constructed;
// truncation happens only at serialization time and never mutates the
// record.
type Record struct {
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	SourceName string    `json:"source_name"`
	URL        string    `json:"url"`
	ImageURL   string    `json:"image_url,omitempty"`
	// PublishedAt is the publication timestamp; the zero value means
	// the source did not carry one.
	PublishedAt time.Time `json:"published_at,omitzero"`
}
