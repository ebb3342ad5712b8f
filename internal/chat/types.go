// Package chat provides the conversation session and the local/remote
// chat-completion adapters.
package chat

import "context"

// Message roles. The system role is only ever produced by BuildPayload;
// the session itself stores user and assistant turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of conversation. Immutable once appended.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is what a chat adapter sends: the active system prompt plus the
// chronological history. The system prompt is prepended fresh per call and
// never part of History.
type Payload struct {
	SystemPrompt string
	History      []Message
}

// Completer is the uniform contract both chat adapters satisfy.
type Completer interface {
	Complete(ctx context.Context, payload Payload) (string, error)
}

// Wire shapes shared by the local and remote endpoints; both speak the
// OpenAI-compatible chat-completions protocol.
type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// messagesFor flattens a payload into the wire message list with the
// system prompt first.
func messagesFor(payload Payload) []Message {
	msgs := make([]Message, 0, len(payload.History)+1)
	msgs = append(msgs, Message{Role: RoleSystem, Content: payload.SystemPrompt})
	msgs = append(msgs, payload.History...)
	return msgs
}
