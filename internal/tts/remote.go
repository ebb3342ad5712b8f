package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/normanking/voicekit/internal/audio"
	"github.com/normanking/voicekit/internal/backend"
)

// AzureConfig configures the remote TTS adapter. The key/region pair is
// shared with the remote STT adapter.
type AzureConfig struct {
	Key      string
	Region   string
	Voice    string        // defaults to "en-US-JennyNeural"
	Endpoint string        // defaults to the region's synthesis endpoint
	Timeout  time.Duration // defaults to 30s
}

// AzureClient makes one blocking synthesis call against the cloud speech
// service and returns the riff-24khz-16bit-mono-pcm result.
type AzureClient struct {
	config     AzureConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewAzureClient creates the remote TTS adapter.
func NewAzureClient(config AzureConfig, logger zerolog.Logger) *AzureClient {
	if config.Voice == "" {
		config.Voice = "en-US-JennyNeural"
	}
	if config.Endpoint == "" && config.Region != "" {
		config.Endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1",
			config.Region)
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &AzureClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.With().Str("provider", "remote-tts").Logger(),
	}
}

// Synthesize posts SSML and wraps the returned audio in a Buffer tagged
// with the service's fixed 24kHz/16-bit/mono contract.
func (c *AzureClient) Synthesize(ctx context.Context, text string) (*audio.Buffer, error) {
	const op = "remote tts"
	startTime := time.Now()

	if c.config.Key == "" || c.config.Region == "" {
		return nil, backend.Configuration(op, "speech key or region not configured")
	}

	ssml := fmt.Sprintf(
		"<speak version='1.0' xml:lang='en-US'><voice name='%s'>%s</voice></speak>",
		c.config.Voice, escapeSSML(text))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint,
		strings.NewReader(ssml))
	if err != nil {
		return nil, backend.Transport(op, err)
	}
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", c.config.Key)
	httpReq.Header.Set("Content-Type", "application/ssml+xml")
	httpReq.Header.Set("X-Microsoft-OutputFormat", "riff-24khz-16bit-mono-pcm")
	httpReq.Header.Set("User-Agent", "voicekit")

	c.logger.Debug().Str("voice", c.config.Voice).Int("textLen", len(text)).
		Msg("Requesting remote synthesis")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, backend.Transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, backend.Transportf(op, "speech service returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	wavData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, backend.Transport(op, err)
	}
	if len(wavData) == 0 {
		return nil, backend.NoOutput(op, "speech service returned an empty audio body")
	}

	buf, err := audio.DecodeWAV(wavData)
	if err != nil {
		return nil, backend.Protocol(op, fmt.Sprintf("synthesis reply is not a valid WAV: %v", err))
	}

	c.logger.Info().Int("pcmBytes", len(buf.PCM)).Dur("took", time.Since(startTime)).
		Msg("Remote synthesis complete")
	return buf, nil
}

// escapeSSML escapes the five XML special characters in user text.
func escapeSSML(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return r.Replace(text)
}
