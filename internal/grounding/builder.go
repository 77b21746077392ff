package grounding

import (
	"fmt"
	"strings"
)

// Default per-record character limits for the two call sites of the
// shared truncation rule: record summaries shown to a human and record
// summaries embedded in the model's grounding prompt.
const (
	DefaultDisplayLimit = 100
	DefaultPromptLimit  = 200
)

// ellipsis is the 3-character marker appended to truncated summaries.
const ellipsis = "..."

// Truncate hard-truncates s to at most limit characters (runes, so
// multi-byte text counts the way a reader counts). Strings within the
// limit are returned unchanged; longer strings keep the first limit-3
// characters and end with the ellipsis marker, so the result is always
// exactly limit characters long in the truncated case.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

// BuildText serializes records into the plain-text grounding block.
// Records are emitted in the order given: the provider's ranking is
// preserved, nothing is deduplicated or dropped. Each record becomes a
// fixed-format block of title, source name, and summary truncated to
// perRecordLimit characters.
func BuildText(records []Record, perRecordLimit int) string {
	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, rec.Title)
		fmt.Fprintf(&sb, "Source: %s\n", rec.SourceName)
		sb.WriteString(Truncate(rec.Summary, perRecordLimit))
		sb.WriteString("\n")
	}
	return sb.String()
}
