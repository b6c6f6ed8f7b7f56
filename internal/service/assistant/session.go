package assistant

import (
	"sync"

	"fridgeagent/pkg/clients/anthropic"
)

// cap on retained turns per session to bound prompt size
const maxHistoryMessages = 20

// SessionManager handles per-session chat histories.
type SessionManager struct {
	sessions map[string][]anthropic.Message
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string][]anthropic.Message),
	}
}

// History retrieves the conversation history for a session.
func (sm *SessionManager) History(sessionID string) []anthropic.Message {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := sm.sessions[sessionID]
	out := make([]anthropic.Message, len(history))
	copy(out, history)
	return out
}

// AppendTurn records one user/assistant exchange for a session.
func (sm *SessionManager) AppendTurn(sessionID, userText, assistantText string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	history := append(sm.sessions[sessionID],
		anthropic.Message{Role: "user", Content: userText},
		anthropic.Message{Role: "assistant", Content: assistantText})

	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	sm.sessions[sessionID] = history
}

// ClearSession removes a session's history.
func (sm *SessionManager) ClearSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, sessionID)
}
