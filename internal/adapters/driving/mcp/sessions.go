package mcp

import (
	"sync"

	"github.com/google/uuid"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

// session pairs a conversation history with the lock that serialises
// access to it. The streamable HTTP transport can deliver two ask calls
// for the same session concurrently; domain.History is not safe for that.
type session struct {
	mu      sync.Mutex
	history *domain.History
}

// sessionStore holds per-session conversation state. MCP clients pass a
// session ID back with each ask call to keep follow-up questions in context.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

// session returns the session for id, creating a fresh one when id is
// empty or unknown. The returned id identifies the session either way.
func (s *sessionStore) session(id string) (string, *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return id, sess
		}
	}

	id = uuid.NewString()
	sess := &session{history: domain.NewHistory()}
	s.sessions[id] = sess
	return id, sess
}
