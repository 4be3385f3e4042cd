package assistant

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wolfman30/doctor-finder/internal/llm"
)

// Session is one user's conversation. The dispatcher mutates only the
// session it is handed.
type Session struct {
	ID        string        `json:"id"`
	History   []llm.Message `json:"history"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewSession starts an empty conversation. A blank id gets a random one.
func NewSession(id string) *Session {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{ID: id, UpdatedAt: time.Now().UTC()}
}

// Append records one message.
func (s *Session) Append(role, content string) {
	s.History = append(s.History, llm.Message{Role: role, Content: content})
	s.UpdatedAt = time.Now().UTC()
}

// Recent returns a copy of the last turns*2 messages (a turn is a user
// message plus the reply). turns <= 0 returns nothing.
func (s *Session) Recent(turns int) []llm.Message {
	return lastMessages(s.History, turns*2)
}

// Trim drops all but the last turns*2 messages.
func (s *Session) Trim(turns int) {
	if turns <= 0 {
		return
	}
	s.History = lastMessages(s.History, turns*2)
}

// Reset clears the history.
func (s *Session) Reset() {
	s.History = nil
	s.UpdatedAt = time.Now().UTC()
}

func lastMessages(history []llm.Message, n int) []llm.Message {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]llm.Message, len(history))
	copy(out, history)
	return out
}
