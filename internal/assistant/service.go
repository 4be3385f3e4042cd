package assistant

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/wolfman30/doctor-finder/internal/llm"
	"github.com/wolfman30/doctor-finder/pkg/logging"
)

const sessionLockStripes = 64

// ErrEmptyMessage is returned when a chat message has no text.
var ErrEmptyMessage = errors.New("assistant: message is required")

// ChatResult is a reply bound to the session that produced it.
type ChatResult struct {
	SessionID string `json:"session_id"`
	Reply
}

// Service runs conversations against a SessionStore. Messages for the same
// session are handled one at a time.
type Service struct {
	dispatcher *Dispatcher
	sessions   SessionStore
	maxTurns   int
	logger     *logging.Logger

	locks [sessionLockStripes]sync.Mutex
}

// NewService wires a Service. maxTurns caps the stored history.
func NewService(dispatcher *Dispatcher, sessions SessionStore, maxTurns int, logger *logging.Logger) *Service {
	if dispatcher == nil {
		panic("assistant: dispatcher cannot be nil")
	}
	if sessions == nil {
		sessions = NewMemorySessionStore(DefaultSessionTTL)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{dispatcher: dispatcher, sessions: sessions, maxTurns: maxTurns, logger: logger}
}

// Chat answers a message. A blank or unknown session id starts a new session.
func (s *Service) Chat(ctx context.Context, sessionID, text string) (ChatResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatResult{}, ErrEmptyMessage
	}

	session := NewSession(sessionID)
	lock := s.lockFor(session.ID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := s.sessions.Get(ctx, session.ID)
	switch {
	case err == nil:
		session = stored
	case errors.Is(err, ErrSessionNotFound):
	default:
		s.logger.Warn("failed to load session, starting fresh", "session_id", session.ID, "error", err)
	}

	reply := s.dispatcher.HandleUserMessage(ctx, session, text)
	session.Trim(s.maxTurns)
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("failed to save session", "session_id", session.ID, "error", err)
	}
	return ChatResult{SessionID: session.ID, Reply: reply}, nil
}

// History returns the stored messages for a session.
func (s *Service) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.History == nil {
		return []llm.Message{}, nil
	}
	return session.History, nil
}

// Reset forgets a session's conversation.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()
	return s.sessions.Delete(ctx, sessionID)
}

func (s *Service) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%sessionLockStripes]
}
