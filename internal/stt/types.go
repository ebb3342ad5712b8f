// Package stt provides the local and remote speech-to-text adapters.
package stt

import (
	"context"

	"github.com/normanking/voicekit/internal/audio"
)

// Result is a successful recognition outcome. Text may legitimately be
// empty; NoMatch marks the case where the backend understood the request
// but heard no speech. Both are successes, kept distinct so the caller can
// choose how to treat them.
type Result struct {
	Text    string
	NoMatch bool
}

// Recognizer is the uniform contract both STT adapters satisfy.
type Recognizer interface {
	Recognize(ctx context.Context, buf *audio.Buffer) (Result, error)
}
