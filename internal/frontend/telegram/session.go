package telegram

import (
	"sync"

	"github.com/vadimtrunov/cinemart/internal/suggest"
)

// sessionManager keeps one suggestion state per chat and enforces access control.
type sessionManager struct {
	mu      sync.Mutex
	stores  map[int64]*suggest.Store
	allowed map[int64]bool // nil or empty = allow all
}

// newSessionManager creates a session manager.
// If allowedUserIDs is empty, all users are allowed.
func newSessionManager(allowedUserIDs []int64) *sessionManager {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	return &sessionManager{
		stores:  make(map[int64]*suggest.Store),
		allowed: allowed,
	}
}

// isAllowed checks if a user is authorized to use the bot.
func (sm *sessionManager) isAllowed(userID int64) bool {
	if len(sm.allowed) == 0 {
		return true
	}
	return sm.allowed[userID]
}

// store returns the chat's state store, creating it on first use.
func (sm *sessionManager) store(chatID int64) *suggest.Store {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, ok := sm.stores[chatID]
	if !ok {
		s = suggest.NewStore()
		sm.stores[chatID] = s
	}
	return s
}

// reset clears a chat's selection and results. In-flight suggestions
// for the chat become stale.
func (sm *sessionManager) reset(chatID int64) {
	sm.mu.Lock()
	s, ok := sm.stores[chatID]
	sm.mu.Unlock()
	if ok {
		s.Reset()
	}
}
