package session

import (
	"sync"
	"time"

	"pocket-sommelier/internal/catalog"
)

// Manager owns every live Session, keyed by user ID. All mutation goes
// through Update, which runs the mutator under the store lock so two
// concurrent events for the same user can never interleave a read of the
// candidate cache with an overwrite.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// Update applies fn to the user's session as a single atomic step, creating
// the session lazily on first use.
func (m *Manager) Update(userID int64, fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{UserID: userID, Step: StepPrice}
		m.sessions[userID] = s
	}
	s.LastSeen = m.now()
	fn(s)
}

// Snapshot returns a copy of the user's session. The copy's slices are
// detached, so readers hold a stable view even while later events overwrite
// the live session.
func (m *Manager) Snapshot(userID int64) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, false
	}
	out := *s
	out.Answers = append([]Answer(nil), s.Answers...)
	out.LastCandidates = append([]catalog.Record(nil), s.LastCandidates...)
	return out, true
}

// Reset drops the user's session entirely.
func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// ClearIdle removes sessions that have not seen an event for longer than ttl
// and reports how many were dropped.
func (m *Manager) ClearIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-ttl)
	var dropped int
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
