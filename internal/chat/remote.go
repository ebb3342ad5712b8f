package chat

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/normanking/voicekit/internal/backend"
)

// DefaultRemoteEndpoint is the OpenRouter chat-completions endpoint.
const DefaultRemoteEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// RemoteConfig configures the remote chat adapter.
type RemoteConfig struct {
	Endpoint string // defaults to DefaultRemoteEndpoint
	APIKey   string
	Model    string
	// Referer and Title are the two identifying headers the gateway asks
	// clients to send alongside the bearer credential.
	Referer string // defaults to "http://localhost"
	Title   string // defaults to "voicekit"
	Timeout time.Duration
}

// RemoteClient talks to the cloud chat-completions gateway with a bearer
// credential. The wire shape is identical to the local adapter's.
type RemoteClient struct {
	config     RemoteConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewRemoteClient creates the remote chat adapter.
func NewRemoteClient(config RemoteConfig, logger zerolog.Logger) *RemoteClient {
	if config.Endpoint == "" {
		config.Endpoint = DefaultRemoteEndpoint
	}
	if config.Referer == "" {
		config.Referer = "http://localhost"
	}
	if config.Title == "" {
		config.Title = "voicekit"
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &RemoteClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.With().Str("provider", "remote-chat").Logger(),
	}
}

// Complete posts the payload with the credential headers and returns the
// first choice's content.
func (c *RemoteClient) Complete(ctx context.Context, payload Payload) (string, error) {
	const op = "remote chat"

	if c.config.APIKey == "" {
		return "", backend.Configuration(op, "no API key configured")
	}

	c.logger.Debug().Int("historyLen", len(payload.History)).Str("model", c.config.Model).
		Msg("Requesting remote chat completion")

	headers := map[string]string{
		"Authorization": "Bearer " + c.config.APIKey,
		"HTTP-Referer":  c.config.Referer,
		"X-Title":       c.config.Title,
	}

	reply, err := postCompletion(ctx, c.httpClient, op, c.config.Endpoint, headers, completionRequest{
		Model:    c.config.Model,
		Messages: messagesFor(payload),
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("Remote chat completion failed")
		return "", err
	}
	return reply, nil
}
