package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/normanking/voicekit/internal/backend"
)

// DefaultLocalEndpoint is the OpenAI-compatible completions endpoint an
// Ollama server exposes out of the box.
const DefaultLocalEndpoint = "http://localhost:11434/v1/chat/completions"

// LocalConfig configures the local chat adapter.
type LocalConfig struct {
	Endpoint string        // defaults to DefaultLocalEndpoint
	Model    string        // model identifier served locally
	Timeout  time.Duration // defaults to 60s; local first-token can be slow
}

// LocalClient talks to a locally-hosted OpenAI-compatible chat server.
type LocalClient struct {
	config     LocalConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewLocalClient creates the local chat adapter.
func NewLocalClient(config LocalConfig, logger zerolog.Logger) *LocalClient {
	if config.Endpoint == "" {
		config.Endpoint = DefaultLocalEndpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &LocalClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.With().Str("provider", "local-chat").Logger(),
	}
}

// Complete posts the payload and returns the first choice's content.
func (c *LocalClient) Complete(ctx context.Context, payload Payload) (string, error) {
	const op = "local chat"

	c.logger.Debug().Int("historyLen", len(payload.History)).Str("model", c.config.Model).
		Msg("Requesting local chat completion")

	reply, err := postCompletion(ctx, c.httpClient, op, c.config.Endpoint, nil, completionRequest{
		Model:    c.config.Model,
		Messages: messagesFor(payload),
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("Local chat completion failed")
		return "", err
	}
	return reply, nil
}

// postCompletion is the shared request path for both chat adapters. It
// fails closed: any network, status, or shape problem comes back as a
// typed backend error.
func postCompletion(ctx context.Context, client *http.Client, op, endpoint string, headers map[string]string, reqBody completionRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", backend.Protocol(op, fmt.Sprintf("marshal request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", backend.Transport(op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", backend.Transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", backend.Transportf(op, "status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", backend.Protocol(op, fmt.Sprintf("decode response: %v", err))
	}
	if len(cr.Choices) == 0 {
		return "", backend.Protocol(op, "response contains no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
