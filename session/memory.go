package session

import (
	"sync"
	"time"

	"sehatmand-backend/models"
)

type record struct {
	history    []models.Turn
	lastActive time.Time
}

// memoryStore keeps sessions in a mutex-guarded map. A single lock over the
// whole table is enough at this load; the critical sections are short and
// never block on I/O.
type memoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]*record
	ttl        time.Duration
	maxHistory int
}

func newMemoryStore(ttl time.Duration, maxHistory int) *memoryStore {
	return &memoryStore{
		sessions:   make(map[string]*record),
		ttl:        ttl,
		maxHistory: maxHistory,
	}
}

func (s *memoryStore) History(sessionID string) []models.Turn {
	if sessionID == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	// Copy so callers never observe a concurrent append.
	out := make([]models.Turn, len(rec.history))
	copy(out, rec.history)
	return out
}

func (s *memoryStore) SaveTurn(sessionID, userMsg, assistantMsg string) {
	if sessionID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Recreate if a concurrent sweep evicted the session between the
	// handler's history read and this save.
	rec, ok := s.sessions[sessionID]
	if !ok {
		rec = &record{}
		s.sessions[sessionID] = rec
	}

	rec.history = append(rec.history,
		models.Turn{Role: models.RoleUser, Content: userMsg},
		models.Turn{Role: models.RoleAssistant, Content: assistantMsg},
	)
	rec.lastActive = time.Now()

	if limit := s.maxHistory * 2; len(rec.history) > limit {
		rec.history = append([]models.Turn(nil), rec.history[len(rec.history)-limit:]...)
	}
}

func (s *memoryStore) CleanupExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.sessions {
		if now.Sub(rec.lastActive) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *memoryStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

func (s *memoryStore) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]*record)
	return nil
}
