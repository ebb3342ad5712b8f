package tts

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/normanking/voicekit/internal/audio"
	"github.com/normanking/voicekit/internal/backend"
	"github.com/normanking/voicekit/internal/proc"
)

// PiperConfig configures the local TTS adapter.
type PiperConfig struct {
	ExePath   string
	ModelPath string
	// LengthScale stretches or compresses speech; 1.0 is normal speed,
	// larger is slower.
	LengthScale float64
}

// PiperClient synthesizes speech through a one-shot piper subprocess. The
// text goes in on stdin, the WAV comes back through a temporary file whose
// lifetime ends inside Synthesize.
type PiperClient struct {
	config PiperConfig
	logger zerolog.Logger
}

// NewPiperClient creates the local TTS adapter.
func NewPiperClient(config PiperConfig, logger zerolog.Logger) *PiperClient {
	if config.LengthScale <= 0 {
		config.LengthScale = 1.0
	}
	return &PiperClient{
		config: config,
		logger: logger.With().Str("provider", "local-tts").Logger(),
	}
}

// Synthesize runs piper once and returns the decoded audio tagged with the
// backend's fixed 22.05kHz/16-bit/mono contract.
func (c *PiperClient) Synthesize(ctx context.Context, text string) (*audio.Buffer, error) {
	const op = "local tts"
	startTime := time.Now()

	if c.config.ExePath == "" || c.config.ModelPath == "" {
		return nil, backend.Configuration(op, "piper executable or model not configured")
	}

	tmpFile, err := os.CreateTemp("", "voicekit-tts-*.wav")
	if err != nil {
		return nil, backend.Transport(op, err)
	}
	outPath := tmpFile.Name()
	tmpFile.Close()
	// Piper creates the file itself; hand it a free path.
	os.Remove(outPath)
	defer os.Remove(outPath)

	args := []string{
		"--model", c.config.ModelPath,
		"--input-file", "-",
		"--length-scale", strconv.FormatFloat(c.config.LengthScale, 'f', -1, 64),
		"--output_file", outPath,
	}

	result, err := proc.RunPipe(ctx, c.logger, c.config.ExePath, args, text)
	if err != nil {
		e := backend.Transport(op, err)
		if result != nil && result.Stderr != "" {
			e.Detail = result.Stderr
		}
		c.logger.Error().Err(err).Msg("Piper synthesis failed")
		return nil, e
	}

	// Non-empty stderr alone is not a failure; the output file is the
	// success signal.
	wavData, err := os.ReadFile(outPath)
	if err != nil {
		return nil, backend.NoOutput(op, fmt.Sprintf("piper exited cleanly but wrote no output file: %s", result.Stderr))
	}

	buf, err := audio.DecodeWAV(wavData)
	if err != nil {
		return nil, backend.Protocol(op, fmt.Sprintf("piper output is not a valid WAV: %v", err))
	}

	c.logger.Info().Int("pcmBytes", len(buf.PCM)).Dur("took", time.Since(startTime)).
		Msg("Piper synthesis complete")
	return buf, nil
}
