package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/normanking/voicekit/internal/config"
)

func TestResolve_Chat(t *testing.T) {
	tests := []struct {
		name string
		snap config.Snapshot
		want Route
	}{
		{
			name: "local model and no remote key",
			snap: config.Snapshot{ChatModel: "llama"},
			want: Local,
		},
		{
			name: "local model preferred over remote key",
			snap: config.Snapshot{ChatModel: "llama", OpenRouterKey: "sk-x", PreferLocalChat: true},
			want: Local,
		},
		{
			name: "remote key wins when local not preferred",
			snap: config.Snapshot{ChatModel: "llama", OpenRouterKey: "sk-x"},
			want: Remote,
		},
		{
			name: "remote key only",
			snap: config.Snapshot{OpenRouterKey: "sk-x"},
			want: Remote,
		},
		{
			name: "nothing configured",
			snap: config.Snapshot{},
			want: Unavailable,
		},
		{
			name: "prefer-local flag without a model is not enough",
			snap: config.Snapshot{PreferLocalChat: true},
			want: Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(&tt.snap).Chat)
		})
	}
}

func TestResolve_STT(t *testing.T) {
	tests := []struct {
		name string
		snap config.Snapshot
		want Route
	}{
		{
			name: "local wins regardless of remote credential",
			snap: config.Snapshot{
				UseLocalSTT: true, WhisperPath: "/opt/whisper/server", WhisperModel: "/opt/whisper/base.bin",
				SpeechKey: "key", SpeechRegion: "westeurope",
			},
			want: Local,
		},
		{
			name: "flag without paths falls back to remote",
			snap: config.Snapshot{UseLocalSTT: true, SpeechKey: "key", SpeechRegion: "westeurope"},
			want: Remote,
		},
		{
			name: "paths without flag fall back to remote",
			snap: config.Snapshot{
				WhisperPath: "/opt/whisper/server", WhisperModel: "/opt/whisper/base.bin",
				SpeechKey: "key", SpeechRegion: "westeurope",
			},
			want: Remote,
		},
		{
			name: "key without region is not a remote credential",
			snap: config.Snapshot{SpeechKey: "key"},
			want: Unavailable,
		},
		{
			name: "nothing configured",
			snap: config.Snapshot{},
			want: Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(&tt.snap).STT)
		})
	}
}

func TestResolve_TTS(t *testing.T) {
	tests := []struct {
		name string
		snap config.Snapshot
		want Route
	}{
		{
			name: "local piper wins over remote",
			snap: config.Snapshot{
				UseLocalTTS: true, PiperPath: "/opt/piper/piper", PiperModel: "/opt/piper/en.onnx",
				SpeechKey: "key", SpeechRegion: "westeurope",
			},
			want: Local,
		},
		{
			name: "remote credential only",
			snap: config.Snapshot{SpeechKey: "key", SpeechRegion: "westeurope"},
			want: Remote,
		},
		{
			name: "missing model path disables local",
			snap: config.Snapshot{UseLocalTTS: true, PiperPath: "/opt/piper/piper"},
			want: Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(&tt.snap).TTS)
		})
	}
}

func TestResolve_IndependentCapabilities(t *testing.T) {
	snap := config.Snapshot{
		ChatModel:    "llama",
		UseLocalSTT:  true,
		WhisperPath:  "/opt/whisper/server",
		WhisperModel: "/opt/whisper/base.bin",
	}

	d := Resolve(&snap)

	assert.Equal(t, Local, d.Chat)
	assert.Equal(t, Local, d.STT)
	assert.Equal(t, Unavailable, d.TTS)
}

func TestRoute_String(t *testing.T) {
	assert.Equal(t, "local", Local.String())
	assert.Equal(t, "remote", Remote.String())
	assert.Equal(t, "unavailable", Unavailable.String())
}
