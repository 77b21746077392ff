package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hojin-dev/newschat/internal/i18n"
)

// Manager is the in-memory session registry. One Session per logical
// conversation; independent sessions are fully isolated and may be
// used concurrently. Nothing survives a process restart.
type Manager struct {
	defaultLocale i18n.Locale

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates an empty session registry. defaultLocale is used
// for sessions that have no query key yet.
func NewManager(defaultLocale i18n.Locale) *Manager {
	return &Manager{
		defaultLocale: defaultLocale,
		sessions:      make(map[uuid.UUID]*Session),
	}
}

// Create registers and returns a fresh session in the EMPTY state.
func (m *Manager) Create() *Session {
	return m.CreateWithLocale(m.defaultLocale)
}

// CreateWithLocale registers a fresh session whose pre-key locale
// overrides the manager default. Once a query key is set, the key's
// locale takes over.
func (m *Manager) CreateWithLocale(loc i18n.Locale) *Session {
	s := &Session{
		id:            uuid.New(),
		createdAt:     time.Now(),
		defaultLocale: loc,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.id] = s
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete removes a session. Deleting an unknown ID is an error so
// callers can distinguish a double delete.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// List returns all sessions ordered by creation time, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].createdAt.Before(out[j].createdAt)
	})
	return out
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
