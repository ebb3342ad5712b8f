// Package tts provides the local and remote text-to-speech adapters.
// Both return 16-bit mono PCM at the backend's fixed sample rate.
package tts

import (
	"context"

	"github.com/normanking/voicekit/internal/audio"
)

// Fixed output contracts per backend.
const (
	PiperSampleRate = 22050
	AzureSampleRate = 24000
)

// Synthesizer is the uniform contract both TTS adapters satisfy.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*audio.Buffer, error)
}
