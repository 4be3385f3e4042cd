// Package llm wraps the chat completion providers used to phrase replies.
package llm

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNoMessages is returned when a request carries nothing to answer.
var ErrNoMessages = errors.New("llm: request has no messages")

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// Request is a provider-neutral completion request. The last message is the
// one being answered; earlier messages are history.
type Request struct {
	Model       string
	System      []string
	Messages    []Message
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

type Response struct {
	Text       string
	Provider   string
	Usage      Usage
	StopReason string
}

// Client produces a completion for a request.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
