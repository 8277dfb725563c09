package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oba-digital/obi-backend/internal/config"
	"github.com/oba-digital/obi-backend/internal/domain"
)

// Session holds the ordered conversation history of one active chat.
// The persona prompt is always the first entry and is added exactly
// once, at creation. Sessions live in memory only and die with the
// process or on eviction; they are never persisted.
//
// lastUsed belongs to the manager: it is read and written only under
// the manager mutex, so the single request owner can append freely
// while the eviction ticker runs.
type Session struct {
	ID       string
	messages []domain.Message
	lastUsed time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID: id,
		messages: []domain.Message{
			{Role: domain.RoleSystem, Content: config.PersonaPrompt},
		},
		lastUsed: time.Now(),
	}
}

// Append adds one entry to the history. Content must be non-empty;
// no other validation is applied.
func (s *Session) Append(role domain.Role, content string) error {
	if content == "" {
		return domain.ErrEmptyContent
	}
	s.messages = append(s.messages, domain.Message{Role: role, Content: content})
	return nil
}

// Snapshot returns a copy of the full ordered history, persona first.
func (s *Session) Snapshot() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len reports the number of history entries including the persona prompt.
func (s *Session) Len() int {
	return len(s.messages)
}

// SessionManager hands out conversation sessions keyed by id. Each
// session has a single logical owner per request; the manager only
// locks around map access.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// FindOrCreate returns the session for id, creating a fresh one (with
// a new id) when id is empty or unknown.
func (m *SessionManager) FindOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			s.lastUsed = time.Now()
			return s
		}
	}
	s := newSession(uuid.NewString())
	m.sessions[s.ID] = s
	return s
}

// End discards the session and its history.
func (m *SessionManager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count reports the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// EvictIdle drops sessions untouched for longer than ttl and returns
// how many were removed.
func (m *SessionManager) EvictIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	evicted := 0
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}
