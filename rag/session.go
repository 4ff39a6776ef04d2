package rag

import (
	"fmt"
	"strings"
	"sync"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// Sessions keep only the most recent turns; older messages are evicted
	// on append.
	maxHistoryMessages = 20
)

// Message is one role-tagged turn of a chat session.
type Message struct {
	Role    string
	Content string
}

// Session is an append-only conversation history, safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	messages []Message
}

func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, Message{Role: role, Content: content})
	if len(s.messages) > maxHistoryMessages {
		s.messages = s.messages[len(s.messages)-maxHistoryMessages:]
	}
}

// History returns a copy of the current messages.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Transcript renders the history as a context block for the next question.
// Empty history renders as "".
func (s *Session) Transcript() string {
	history := s.History()
	if len(history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("[이전 대화]\n")
	for _, m := range history {
		speaker := "사용자"
		if m.Role == RoleAssistant {
			speaker = "어시스턴트"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
	}
	return b.String()
}

// SessionStore keeps in-memory sessions keyed by client-supplied id.
// Nothing survives a process restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		s = &Session{}
		st.sessions[id] = s
	}
	return s
}
