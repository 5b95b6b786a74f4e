// Package assistant bridges ai chats to an external text-completion
// backend. The chat store treats the backend as an opaque function from a
// message plus a role-tagged transcript to a single response string.
package assistant

import "context"

// Turn roles in the transcript sent to the backend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one prior exchange in an ai chat.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Completer produces a single assistant reply for a new message given the
// ordered transcript of prior turns. Implementations may fail; callers
// make at most one attempt and never retry.
type Completer interface {
	Complete(ctx context.Context, message string, history []Turn) (string, error)
}

// OfflineReply is the canned response appended when the system is offline.
const OfflineReply = "I'm offline right now!"

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, message string, history []Turn) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, message string, history []Turn) (string, error) {
	return f(ctx, message, history)
}
