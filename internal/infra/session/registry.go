// Package session holds the process-wide table of live interview sessions.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"interview-coach/internal/domain/apperr"
	"interview-coach/internal/domain/entities"
	"interview-coach/internal/domain/interfaces/repository"
	"interview-coach/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

const notFoundMessage = "Interview session not found"

// Registry owns every live session. Values handed out are snapshots; callers
// that mutate a session hold Lock for its id and write it back with Save.
type Registry struct {
	store repository.SessionStore
	locks *keyedMutex
	now   func() time.Time
}

func NewRegistry(store repository.SessionStore) *Registry {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Registry{
		store: store,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

// Create starts a fresh session, silently replacing any session with the same id.
func (r *Registry) Create(sessionID, topic string) entities.InterviewSession {
	now := r.now()
	sess := entities.InterviewSession{
		SessionID:    sessionID,
		Topic:        topic,
		CreatedAt:    now,
		LastActivity: now,
		State:        entities.StateCreated,
	}
	r.store.Put(sess)
	return sess
}

func (r *Registry) Get(sessionID string) (entities.InterviewSession, error) {
	sess, ok := r.store.Get(sessionID)
	if !ok {
		return entities.InterviewSession{}, apperr.New(apperr.KindSessionNotFound, "registry.Get", notFoundMessage)
	}
	return sess, nil
}

// Save writes back a mutated snapshot. It fails when the session was deleted
// after it was read. The caller must hold Lock for the session id.
func (r *Registry) Save(sess entities.InterviewSession) error {
	if _, ok := r.store.Get(sess.SessionID); !ok {
		return apperr.New(apperr.KindSessionNotFound, "registry.Save", notFoundMessage)
	}
	sess.LastActivity = r.now()
	r.store.Put(sess)
	return nil
}

func (r *Registry) List() []entities.InterviewSession {
	return r.store.List()
}

// Delete removes a session. It waits for any in-flight operation on the same
// id, so it must not be called while holding Lock for that id.
func (r *Registry) Delete(sessionID string) error {
	unlock := r.Lock(sessionID)
	defer unlock()

	if !r.store.Delete(sessionID) {
		return apperr.New(apperr.KindSessionNotFound, "registry.Delete", notFoundMessage)
	}
	return nil
}

// Lock serializes state-changing operations on one session id.
func (r *Registry) Lock(sessionID string) (unlock func()) {
	return r.locks.Lock(sessionID)
}

// Sweep deletes sessions idle for longer than ttl and returns how many it removed.
func (r *Registry) Sweep(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	removed := 0
	for _, sess := range r.store.List() {
		if r.now().Sub(sess.LastActivity) <= ttl {
			continue
		}
		unlock := r.Lock(sess.SessionID)
		current, ok := r.store.Get(sess.SessionID)
		if ok && r.now().Sub(current.LastActivity) > ttl && r.store.Delete(sess.SessionID) {
			removed++
		}
		unlock()
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, ttl, interval time.Duration, log *logger.Logger) {
	if ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ttl); n > 0 {
				log.Info(fmt.Sprintf("Expired %d idle interview sessions", n), logrus.Fields{"ttl": ttl.String()})
			}
		}
	}
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free. Entries are dropped once nobody holds or
// waits for them.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.Unlock()
			k.mu.Lock()
			m.refs--
			if m.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
