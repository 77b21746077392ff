package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/i18n"
)

// Role values for chat turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Mode selects what kind of grounding a query key identifies.
type Mode string

// Supported grounding modes.
const (
	ModeNews   Mode = "news"
	ModeTravel Mode = "travel"
)

// QueryKey is the identity of what a conversation is grounded in:
// a search keyword in news mode, or a destination plus language in
// travel mode. Two keys are equal iff every field is equal.
type QueryKey struct {
	Mode        Mode
	Keyword     string // news mode
	Destination string // travel mode
	Locale      i18n.Locale
}

// Validate checks that the key carries the fields its mode requires.
func (k QueryKey) Validate() error {
	switch k.Mode {
	case ModeNews:
		if k.Keyword == "" {
			return fmt.Errorf("%w: news mode requires a keyword", ErrInvalidQueryKey)
		}
	case ModeTravel:
		if k.Destination == "" {
			return fmt.Errorf("%w: travel mode requires a destination", ErrInvalidQueryKey)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidQueryKey, k.Mode)
	}
	if k.Locale == "" {
		return fmt.Errorf("%w: locale is required", ErrInvalidQueryKey)
	}
	return nil
}

// ChatTurn is one message in the conversation history. Append-only,
// never mutated after creation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds the state of one grounded conversation. All methods
// are safe for concurrent use; in addition, Acquire/Release serialize
// the full request/response cycle so that no other mutation of the
// same session interleaves while a completion call is in flight.
//
// The zero value is not useful; sessions are created by Manager.Create.
type Session struct {
	id            uuid.UUID
	createdAt     time.Time
	defaultLocale i18n.Locale

	reqMu sync.Mutex // serializes one in-flight request cycle

	mu      sync.Mutex // guards the fields below
	active  bool
	key     QueryKey
	epoch   int64
	history []ChatTurn
	records []grounding.Record
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Acquire takes the per-session request lock. Exactly one request
// cycle (append user turn, complete, append assistant turn) runs at a
// time per session; independent sessions proceed concurrently.
func (s *Session) Acquire() { s.reqMu.Lock() }

// Release releases the per-session request lock.
func (s *Session) Release() { s.reqMu.Unlock() }

// SetQueryKey replaces the active query key. When the key differs from
// the current one (or no key was set yet) the epoch increments by
// exactly one and history and records are cleared: a grounding change
// invalidates the prior conversation. Setting the same key again is a
// no-op that preserves history. Returns whether the epoch changed.
func (s *Session) SetQueryKey(key QueryKey) (changed bool, err error) {
	if err := key.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active && s.key == key {
		return false, nil
	}
	s.active = true
	s.key = key
	s.epoch++
	s.history = nil
	s.records = nil
	return true, nil
}

// QueryKey returns the active key. ok is false while no key is set.
func (s *Session) QueryKey() (key QueryKey, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.active
}

// Locale returns the conversation locale: the active key's locale, or
// the manager default while no key is set.
func (s *Session) Locale() i18n.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return s.key.Locale
	}
	return s.defaultLocale
}

// Epoch returns the current epoch. Zero means no key was ever set.
func (s *Session) Epoch() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// AppendUserTurn appends a user turn to the history. Fails with
// ErrInvalidState while no query key is set.
func (s *Session) AppendUserTurn(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrInvalidState
	}
	s.history = append(s.history, ChatTurn{Role: RoleUser, Content: text})
	return nil
}

// AppendAssistantTurn appends an assistant turn produced under the
// given epoch. When the session has moved to a newer epoch since the
// matching user turn was appended, the turn is discarded and
// ErrStaleEpoch is returned: a stale answer from a superseded
// grounding context must not pollute the new conversation.
func (s *Session) AppendAssistantTurn(epoch int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrInvalidState
	}
	if s.epoch != epoch {
		return fmt.Errorf("%w: turn epoch %d, session epoch %d", ErrStaleEpoch, epoch, s.epoch)
	}
	s.history = append(s.history, ChatTurn{Role: RoleAssistant, Content: text})
	return nil
}

// Clear empties the history while keeping the query key, epoch, and
// records: a fresh conversation over the same grounding context.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// History returns a copy of the conversation history, oldest first.
func (s *Session) History() []ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatTurn, len(s.history))
	copy(out, s.history)
	return out
}

// SetRecords installs the grounding records fetched for the given
// epoch. Records from a stale fetch are rejected with ErrStaleEpoch.
// Record order is the provider's ranking and is preserved.
func (s *Session) SetRecords(epoch int64, records []grounding.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrInvalidState
	}
	if s.epoch != epoch {
		return fmt.Errorf("%w: fetch epoch %d, session epoch %d", ErrStaleEpoch, epoch, s.epoch)
	}
	s.records = make([]grounding.Record, len(records))
	copy(s.records, records)
	return nil
}

// Records returns a copy of the grounding records in ranked order.
func (s *Session) Records() []grounding.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]grounding.Record, len(s.records))
	copy(out, s.records)
	return out
}
