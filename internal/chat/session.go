package chat

import "sync"

// Session holds the ordered conversation history and the active persona's
// system prompt. History grows unbounded within a session and is cleared
// only on reload or reset. The system prompt lives outside the history so
// switching personas mid-session reframes future calls without rewriting
// past turns.
type Session struct {
	mu           sync.Mutex
	systemPrompt string
	history      []Message
}

// NewSession creates a session framed by the given system prompt.
func NewSession(systemPrompt string) *Session {
	return &Session{systemPrompt: systemPrompt}
}

// AppendUserTurn records a user message unconditionally.
func (s *Session) AppendUserTurn(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Message{Role: RoleUser, Content: text})
}

// AppendAssistantTurn records an assistant message only when the adapter
// call succeeded. Error strings never enter the history.
func (s *Session) AppendAssistantTurn(text string, wasErr bool) {
	if wasErr {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Message{Role: RoleAssistant, Content: text})
}

// BuildPayload snapshots the current system prompt and history for one
// adapter call. The returned history is a copy; later appends do not
// mutate an in-flight payload.
func (s *Session) BuildPayload() Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]Message, len(s.history))
	copy(history, s.history)
	return Payload{SystemPrompt: s.systemPrompt, History: history}
}

// SetSystemPrompt swaps the active persona prompt. Takes effect on the
// next BuildPayload.
func (s *Session) SetSystemPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systemPrompt = prompt
}

// Len returns the number of stored turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// History returns a copy of the stored turns.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Clear drops all turns, keeping the system prompt.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}
