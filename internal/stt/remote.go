package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/normanking/voicekit/internal/audio"
	"github.com/normanking/voicekit/internal/backend"
)

// AzureConfig configures the remote STT adapter. Key and Region together
// form the single credential the speech service needs.
type AzureConfig struct {
	Key      string
	Region   string
	Language string        // defaults to "en-US"
	Endpoint string        // defaults to the region's short-audio endpoint
	Timeout  time.Duration // defaults to 30s
	// SegmentationSilence is how long the service waits through silence
	// before ending the utterance.
	SegmentationSilence time.Duration
}

// AzureClient performs one blocking single-utterance recognition per call
// against the cloud speech service's short-audio surface. The WAV header
// written around the PCM declares the caller-supplied rate, depth and
// channel count verbatim.
type AzureClient struct {
	config     AzureConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewAzureClient creates the remote STT adapter.
func NewAzureClient(config AzureConfig, logger zerolog.Logger) *AzureClient {
	if config.Language == "" {
		config.Language = "en-US"
	}
	if config.Endpoint == "" && config.Region != "" {
		config.Endpoint = fmt.Sprintf(
			"https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1",
			config.Region)
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.SegmentationSilence <= 0 {
		config.SegmentationSilence = 5 * time.Second
	}
	return &AzureClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.With().Str("provider", "remote-stt").Logger(),
	}
}

// azureResponse is the short-audio recognition result envelope.
type azureResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Recognize discriminates three outcomes: recognized text (possibly
// empty), no-match (an empty-string success, not an error), and canceled
// (a typed error carrying the backend's cause).
func (c *AzureClient) Recognize(ctx context.Context, buf *audio.Buffer) (Result, error) {
	const op = "remote stt"

	if c.config.Key == "" || c.config.Region == "" {
		return Result{}, backend.Configuration(op, "speech key or region not configured")
	}

	params := url.Values{}
	params.Set("language", c.config.Language)
	params.Set("format", "simple")
	requestURL := c.config.Endpoint + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL,
		bytes.NewReader(buf.EncodeWAV()))
	if err != nil {
		return Result{}, backend.Transport(op, err)
	}
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", c.config.Key)
	httpReq.Header.Set("Content-Type",
		fmt.Sprintf("audio/wav; codecs=audio/pcm; samplerate=%d", buf.SampleRate))
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Speech-Segmentation-Silence-Timeout-Ms",
		fmt.Sprintf("%d", c.config.SegmentationSilence.Milliseconds()))

	c.logger.Debug().Int("sampleRate", buf.SampleRate).Int("channels", buf.Channels).
		Dur("audio", buf.Duration()).Msg("Sending utterance for remote recognition")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, backend.Transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, backend.Transportf(op, "speech service returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var ar azureResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return Result{}, backend.Protocol(op, fmt.Sprintf("decode response: %v", err))
	}

	switch ar.RecognitionStatus {
	case "Success":
		c.logger.Info().Int("textLen", len(ar.DisplayText)).Msg("Remote recognition succeeded")
		return Result{Text: ar.DisplayText}, nil
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		// The service understood the request but heard no usable speech.
		c.logger.Info().Str("status", ar.RecognitionStatus).Msg("Remote recognition found no speech")
		return Result{NoMatch: true}, nil
	case "":
		return Result{}, backend.Protocol(op, "response missing RecognitionStatus")
	default:
		return Result{}, backend.Canceled(op, ar.RecognitionStatus)
	}
}
