package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/normanking/voicekit/internal/audio"
	"github.com/normanking/voicekit/internal/backend"
)

// DefaultWhisperEndpoint is where the supervised whisper.cpp server
// listens (fixed bind address and port, see proc.Supervisor).
const DefaultWhisperEndpoint = "http://127.0.0.1:8080/inference"

// WhisperConfig configures the local STT adapter.
type WhisperConfig struct {
	Endpoint string        // defaults to DefaultWhisperEndpoint
	Timeout  time.Duration // defaults to 30s
}

// WhisperClient uploads audio to the local whisper.cpp server.
type WhisperClient struct {
	config     WhisperConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewWhisperClient creates the local STT adapter.
func NewWhisperClient(config WhisperConfig, logger zerolog.Logger) *WhisperClient {
	if config.Endpoint == "" {
		config.Endpoint = DefaultWhisperEndpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &WhisperClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.With().Str("provider", "local-stt").Logger(),
	}
}

// Recognize serializes the buffer to WAV, uploads it as the "file" field,
// and returns the trimmed transcript from the {text} response.
func (c *WhisperClient) Recognize(ctx context.Context, buf *audio.Buffer) (Result, error) {
	const op = "local stt"
	startTime := time.Now()

	if len(buf.PCM) == 0 {
		return Result{}, backend.Protocol(op, "empty audio buffer")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return Result{}, backend.Protocol(op, fmt.Sprintf("create form file: %v", err))
	}
	if _, err := part.Write(buf.EncodeWAV()); err != nil {
		return Result{}, backend.Protocol(op, fmt.Sprintf("write audio data: %v", err))
	}
	if err := writer.Close(); err != nil {
		return Result{}, backend.Protocol(op, fmt.Sprintf("close multipart writer: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, body)
	if err != nil {
		return Result{}, backend.Transport(op, err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Debug().Str("url", c.config.Endpoint).Int("pcmBytes", len(buf.PCM)).
		Msg("Uploading audio to whisper server")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, backend.Transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, backend.Transportf(op, "whisper server returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var sttResp struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sttResp); err != nil {
		return Result{}, backend.Protocol(op, fmt.Sprintf("decode response: %v", err))
	}

	text := strings.TrimSpace(sttResp.Text)
	c.logger.Info().Int("textLen", len(text)).Dur("took", time.Since(startTime)).
		Msg("Local transcription complete")

	return Result{Text: text}, nil
}
