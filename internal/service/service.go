// Package service is the public surface of voicekit: three capability
// operations (Chat, Recognize, Synthesize) plus Reload, routed per the
// active configuration snapshot.
//
// Concurrency contract: the three operations may be in flight
// independently, but the caller serializes conversational turns: no two
// turns run concurrently, and within a turn recognition completes before
// chat, chat before synthesis. The service does not enforce turn ordering
// itself. Reload is the only operation that replaces the snapshot.
package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/normanking/voicekit/internal/audio"
	"github.com/normanking/voicekit/internal/backend"
	"github.com/normanking/voicekit/internal/chat"
	"github.com/normanking/voicekit/internal/config"
	"github.com/normanking/voicekit/internal/persona"
	"github.com/normanking/voicekit/internal/proc"
	"github.com/normanking/voicekit/internal/router"
	"github.com/normanking/voicekit/internal/stt"
	"github.com/normanking/voicekit/internal/tts"
)

// Service routes capability requests to the adapters the current snapshot
// supports and owns the conversation session and process supervisor.
type Service struct {
	logger     zerolog.Logger
	configPath string
	sup        *proc.Supervisor

	mu      sync.Mutex
	snap    *config.Snapshot
	routes  router.Decision
	session *chat.Session

	localChat  chat.Completer
	remoteChat chat.Completer
	localSTT   stt.Recognizer
	remoteSTT  stt.Recognizer
	localTTS   tts.Synthesizer
	remoteTTS  tts.Synthesizer
}

// New loads the snapshot at configPath and brings the service up,
// starting the local recognition server when the snapshot routes
// speech-to-text locally.
func New(configPath string, logger zerolog.Logger) (*Service, error) {
	s := &Service{
		logger:     logger.With().Str("component", "service").Logger(),
		configPath: configPath,
		sup:        proc.NewSupervisor(logger),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload stops any running local server, re-reads the settings file into a
// fresh snapshot, recomputes routes, rebuilds the adapters, and resets the
// conversation. The old server is stopped first so a stale instance can
// never survive a changed model path.
func (s *Service) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sup.Stop()

	snap, err := config.Load(s.configPath)
	if err != nil {
		return err
	}

	s.snap = snap
	s.routes = router.Resolve(snap)
	s.session = chat.NewSession(persona.Get(snap.Persona).SystemPrompt)

	s.localChat = chat.NewLocalClient(chat.LocalConfig{Model: snap.ChatModel}, s.logger)
	s.remoteChat = chat.NewRemoteClient(chat.RemoteConfig{
		APIKey: snap.OpenRouterKey,
		Model:  snap.ChatModel,
	}, s.logger)
	s.localSTT = stt.NewWhisperClient(stt.WhisperConfig{}, s.logger)
	s.remoteSTT = stt.NewAzureClient(stt.AzureConfig{
		Key:    snap.SpeechKey,
		Region: snap.SpeechRegion,
	}, s.logger)
	s.localTTS = tts.NewPiperClient(tts.PiperConfig{
		ExePath:     snap.PiperPath,
		ModelPath:   snap.PiperModel,
		LengthScale: snap.PiperSpeed,
	}, s.logger)
	s.remoteTTS = tts.NewAzureClient(tts.AzureConfig{
		Key:    snap.SpeechKey,
		Region: snap.SpeechRegion,
	}, s.logger)

	if s.routes.STT == router.Local {
		if err := s.sup.EnsureStarted(snap.WhisperPath, snap.WhisperModel); err != nil {
			// Keep the route; the adapter will surface transport errors
			// until the server comes up.
			s.logger.Warn().Err(err).Msg("Recognition server failed to start")
		}
	}

	s.logger.Info().
		Stringer("chat", s.routes.Chat).
		Stringer("stt", s.routes.STT).
		Stringer("tts", s.routes.TTS).
		Str("persona", persona.Get(snap.Persona).Name).
		Msg("Configuration loaded")
	return nil
}

// Routes returns the routing decision for the current snapshot.
func (s *Service) Routes() router.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.routes
}

// History returns a copy of the conversation so far.
func (s *Service) History() []chat.Message {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()
	return session.History()
}

// Personas lists the selectable personas.
func (s *Service) Personas() []persona.Persona {
	return persona.Available()
}

// Chat runs one conversational turn. The user turn is recorded before the
// backend call; the assistant turn only lands on confirmed success, so an
// abandoned or failed call never pollutes the history.
func (s *Service) Chat(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	route := s.routes.Chat
	session := s.session
	var completer chat.Completer
	switch route {
	case router.Local:
		completer = s.localChat
	case router.Remote:
		completer = s.remoteChat
	}
	s.mu.Unlock()

	if completer == nil {
		return "", backend.Configuration("chat", "no chat backend configured")
	}

	session.AppendUserTurn(text)
	reply, err := completer.Complete(ctx, session.BuildPayload())
	session.AppendAssistantTurn(reply, err != nil)
	if err != nil {
		return "", err
	}
	return reply, nil
}

// Recognize transcribes a complete utterance. A no-match outcome returns
// an empty string with a nil error; an empty transcript is a success, not
// a failure.
func (s *Service) Recognize(ctx context.Context, buf *audio.Buffer) (string, error) {
	s.mu.Lock()
	route := s.routes.STT
	var recognizer stt.Recognizer
	switch route {
	case router.Local:
		recognizer = s.localSTT
	case router.Remote:
		recognizer = s.remoteSTT
	}
	s.mu.Unlock()

	if recognizer == nil {
		return "", backend.Configuration("speech-to-text", "no recognition backend configured")
	}

	result, err := recognizer.Recognize(ctx, buf)
	if err != nil {
		return "", err
	}
	if result.NoMatch {
		s.logger.Debug().Msg("Recognition found no speech")
		return "", nil
	}
	return result.Text, nil
}

// Synthesize renders text as 16-bit mono PCM at the chosen backend's
// fixed sample rate.
func (s *Service) Synthesize(ctx context.Context, text string) (*audio.Buffer, error) {
	s.mu.Lock()
	route := s.routes.TTS
	var synth tts.Synthesizer
	switch route {
	case router.Local:
		synth = s.localTTS
	case router.Remote:
		synth = s.remoteTTS
	}
	s.mu.Unlock()

	if synth == nil {
		return nil, backend.Configuration("text-to-speech", "no synthesis backend configured")
	}

	return synth.Synthesize(ctx, text)
}

// WatchConfig watches the settings file and reloads on change. Close the
// returned watcher to stop.
func (s *Service) WatchConfig() (*config.Watcher, error) {
	return config.Watch(s.configPath, s.logger, func() {
		if err := s.Reload(); err != nil {
			s.logger.Error().Err(err).Msg("Reload after settings change failed")
		}
	})
}

// Close stops the supervised recognition server. Idempotent; always call
// on shutdown so no orphaned server process survives the parent.
func (s *Service) Close() error {
	s.sup.Stop()
	return nil
}
