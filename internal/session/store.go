package session

import (
	"sync"

	"gastobot/internal/chat"
)

// Store maps user IDs to sessions. Implementations must be safe for
// concurrent use; the bot handles updates from different users in parallel.
type Store interface {
	Get(userID int64) (*Session, bool)
	Put(userID int64, s *Session)
	Delete(userID int64)
	Len() int
}

// MemoryStore is the process-wide in-memory store. Sessions do not survive
// a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

func (m *MemoryStore) Put(userID int64, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

func (m *MemoryStore) Delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Ensure returns the user's session, creating the default one when absent,
// and lazily repairs fields the multi-expense flow expects. Flows build
// sessions incrementally across events, so Files may be missing even in
// StateAwaitingFiles.
func Ensure(store Store, userID int64) *Session {
	s, ok := store.Get(userID)
	if !ok || s == nil {
		s = &Session{State: StateStart}
		store.Put(userID, s)
	}
	if s.State == StateAwaitingFiles && s.Files == nil {
		s.Files = []chat.FileRef{}
	}
	return s
}

// Reset replaces the session with the default state, keeping only the owner.
// This is the only path that clears flow-owned scratch fields.
func Reset(store Store, userID int64) *Session {
	s := &Session{State: StateStart, UserID: userID}
	store.Put(userID, s)
	return s
}
