package session

import (
	"sync"

	"interview-coach/internal/domain/entities"
)

// MemoryStore is the default SessionStore: a mutex guarded map plus an
// insertion-order index.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entities.InterviewSession
	order    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entities.InterviewSession),
	}
}

// Put stores a copy of session. Replacing an existing id keeps its position
// in the iteration order.
func (s *MemoryStore) Put(session entities.InterviewSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.SessionID]; !exists {
		s.order = append(s.order, session.SessionID)
	}
	s.sessions[session.SessionID] = session.Clone()
}

func (s *MemoryStore) Get(sessionID string) (entities.InterviewSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return entities.InterviewSession{}, false
	}
	return sess.Clone(), true
}

func (s *MemoryStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	s.removeFromOrder(sessionID)
	return true
}

func (s *MemoryStore) List() []entities.InterviewSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.InterviewSession, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].Clone())
	}
	return out
}

func (s *MemoryStore) removeFromOrder(sessionID string) {
	for i, id := range s.order {
		if id == sessionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
