package webchat

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/wolfman30/doctor-finder/internal/assistant"
	"github.com/wolfman30/doctor-finder/internal/doctors"
	"github.com/wolfman30/doctor-finder/internal/llm"
	"github.com/wolfman30/doctor-finder/pkg/logging"
	"golang.org/x/net/websocket"
)

// historyLimit caps the messages replayed when a session reconnects.
const historyLimit = 50

// Chatter answers chat messages. *assistant.Service implements it.
type Chatter interface {
	Chat(ctx context.Context, sessionID, text string) (assistant.ChatResult, error)
	History(ctx context.Context, sessionID string) ([]llm.Message, error)
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what the widget receives.
type OutboundMessage struct {
	Type      string           `json:"type"` // "session", "history", "typing", "message", "pong", "error"
	SessionID string           `json:"session_id,omitempty"`
	Text      string           `json:"text,omitempty"`
	Intent    string           `json:"intent,omitempty"`
	Specialty string           `json:"specialty,omitempty"`
	City      string           `json:"city,omitempty"`
	Emergency bool             `json:"emergency,omitempty"`
	Doctors   []doctors.Doctor `json:"doctors,omitempty"`
	Messages  []llm.Message    `json:"messages,omitempty"`
}

// Handler serves the browser chat over a websocket.
type Handler struct {
	chat   Chatter
	logger *logging.Logger
}

// NewHandler creates a web chat handler.
func NewHandler(chat Chatter, logger *logging.Logger) *Handler {
	if chat == nil {
		panic("webchat: chatter cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{chat: chat, logger: logger}
}

// HandleWebSocket upgrades GET /chat/ws?session= and answers each message
// frame on the same connection.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(r.Context(), conn, r.URL.Query().Get("session"))
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(ctx context.Context, conn *websocket.Conn, sessionID string) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})

	history, err := h.chat.History(ctx, sessionID)
	switch {
	case err == nil && len(history) > 0:
		if len(history) > historyLimit {
			history = history[len(history)-historyLimit:]
		}
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", SessionID: sessionID, Messages: history})
	case err != nil && !errors.Is(err, assistant.ErrSessionNotFound):
		h.logger.Warn("webchat: failed to load history", "session_id", sessionID, "error", err)
	}

	h.logger.Info("webchat: connection opened", "session_id", sessionID)
	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}
		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})
		if err := websocket.JSON.Send(conn, h.answer(ctx, sessionID, msg.Text)); err != nil {
			h.logger.Debug("webchat: failed to send reply", "session_id", sessionID, "error", err)
			return
		}
	}
}

func (h *Handler) answer(ctx context.Context, sessionID, text string) OutboundMessage {
	result, err := h.chat.Chat(ctx, sessionID, text)
	if err != nil {
		h.logger.Error("webchat: failed to process message", "session_id", sessionID, "error", err)
		return OutboundMessage{Type: "error", SessionID: sessionID, Text: "Sorry, something went wrong. Please try again."}
	}
	return OutboundMessage{
		Type:      "message",
		SessionID: result.SessionID,
		Text:      result.Text,
		Intent:    string(result.Intent),
		Specialty: result.Specialty,
		City:      result.City,
		Emergency: result.Emergency,
		Doctors:   result.Doctors,
	}
}
