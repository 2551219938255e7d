package utils

import (
	"context"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatBackend is a single chat-completion provider. The model fallback loop in
// the coach service drives it; a backend only ever attempts the one model it
// is given and reports the outcome through the returned error.
type ChatBackend interface {
	Complete(ctx context.Context, model string, messages []ChatMessage) (string, error)
	// Stream delivers the assistant reply incrementally through onDelta.
	// It must not call onDelta after returning.
	Stream(ctx context.Context, model string, messages []ChatMessage, onDelta func(chunk string)) error
}

type FailureKind int

const (
	FailureRateLimited FailureKind = iota
	FailureHTTP
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureRateLimited:
		return "rate_limited"
	case FailureHTTP:
		return "http_error"
	default:
		return "transport_error"
	}
}

// ModelCallError records one failed attempt against one model. All kinds are
// treated the same by the fallback loop (try the next model); the kind exists
// for logs and tests.
type ModelCallError struct {
	Model string
	Kind  FailureKind
	Err   error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model %s: %s: %v", e.Model, e.Kind, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }
