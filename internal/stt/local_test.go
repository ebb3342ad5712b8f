package stt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/voicekit/internal/audio"
	"github.com/normanking/voicekit/internal/backend"
)

func testBuffer() *audio.Buffer {
	return &audio.Buffer{
		PCM:        make([]byte, 3200),
		SampleRate: 16000,
		BitDepth:   16,
		Channels:   1,
	}
}

func TestWhisperClient_Recognize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		require.NoError(t, r.ParseMultipartForm(10<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "audio.wav", header.Filename)

		uploaded, err := io.ReadAll(file)
		require.NoError(t, err)
		// The upload must be a complete WAV container, not bare PCM.
		assert.Equal(t, "RIFF", string(uploaded[0:4]))
		assert.Len(t, uploaded, 44+3200)

		w.Write([]byte(`{"text":"  hello there \n"}`))
	}))
	defer server.Close()

	client := NewWhisperClient(WhisperConfig{Endpoint: server.URL}, zerolog.Nop())

	result, err := client.Recognize(context.Background(), testBuffer())

	require.NoError(t, err)
	assert.Equal(t, "hello there", result.Text)
	assert.False(t, result.NoMatch)
}

func TestWhisperClient_Recognize_EmptyTranscriptIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":""}`))
	}))
	defer server.Close()

	client := NewWhisperClient(WhisperConfig{Endpoint: server.URL}, zerolog.Nop())

	result, err := client.Recognize(context.Background(), testBuffer())

	require.NoError(t, err)
	assert.Equal(t, "", result.Text)
}

func TestWhisperClient_Recognize_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind backend.Kind
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantKind: backend.KindTransport},
		{name: "bad json", status: http.StatusOK, body: "{", wantKind: backend.KindProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewWhisperClient(WhisperConfig{Endpoint: server.URL}, zerolog.Nop())

			_, err := client.Recognize(context.Background(), testBuffer())

			require.Error(t, err)
			assert.True(t, backend.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestNewWhisperClient_Defaults(t *testing.T) {
	client := NewWhisperClient(WhisperConfig{}, zerolog.Nop())
	assert.Equal(t, DefaultWhisperEndpoint, client.config.Endpoint)
}
