// Package config loads and snapshots voicekit settings.
//
// Settings live in an INI-style file with three sections: local_paths,
// api_keys and user_settings. A Snapshot is the fully-resolved, immutable
// view of one load; replacing the snapshot (via a fresh Load) is the only
// way routing behavior ever changes.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Snapshot holds every resolved setting. It is never mutated after Load;
// a reload produces a new value and the old one is discarded.
type Snapshot struct {
	// api_keys
	OpenRouterKey string
	SpeechKey     string
	SpeechRegion  string

	// local_paths
	ChatModel    string // model identifier served by the local chat server
	WhisperPath  string // whisper.cpp server executable
	WhisperModel string
	PiperPath    string // piper executable
	PiperModel   string
	PiperSpeed   float64 // synthesis length scale, 1.0 = normal

	// user_settings
	Persona         string
	PreferLocalChat bool
	UseLocalSTT     bool
	UseLocalTTS     bool
}

// DefaultPath returns the standard settings file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".voicekit", "settings.ini"), nil
}

// Load reads the settings file at path into a fresh Snapshot. A missing
// file is not an error: every key has a defined default (empty string,
// false, or 1.0), which leaves the system in local-only or unavailable
// modes until the user configures backends.
func Load(path string) (*Snapshot, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	v.SetDefault("api_keys.openrouter_key", "")
	v.SetDefault("api_keys.azure_speech_key", "")
	v.SetDefault("api_keys.azure_speech_region", "")

	v.SetDefault("local_paths.ollama_model", "")
	v.SetDefault("local_paths.whisper_path", "")
	v.SetDefault("local_paths.whisper_model_path", "")
	v.SetDefault("local_paths.piper_path", "")
	v.SetDefault("local_paths.piper_model_path", "")
	v.SetDefault("local_paths.piper_speed", 1.0)

	v.SetDefault("user_settings.ai_persona", "")
	v.SetDefault("user_settings.prefer_local_llm", false)
	v.SetDefault("user_settings.use_local_stt", false)
	v.SetDefault("user_settings.use_local_tts", false)

	if err := v.ReadInConfig(); err != nil {
		// Absent file means defaults; anything else is a real error.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, err
			}
		}
	}

	snap := &Snapshot{
		OpenRouterKey: v.GetString("api_keys.openrouter_key"),
		SpeechKey:     v.GetString("api_keys.azure_speech_key"),
		SpeechRegion:  v.GetString("api_keys.azure_speech_region"),

		ChatModel:    v.GetString("local_paths.ollama_model"),
		WhisperPath:  v.GetString("local_paths.whisper_path"),
		WhisperModel: v.GetString("local_paths.whisper_model_path"),
		PiperPath:    v.GetString("local_paths.piper_path"),
		PiperModel:   v.GetString("local_paths.piper_model_path"),
		PiperSpeed:   v.GetFloat64("local_paths.piper_speed"),

		Persona:         v.GetString("user_settings.ai_persona"),
		PreferLocalChat: v.GetBool("user_settings.prefer_local_llm"),
		UseLocalSTT:     v.GetBool("user_settings.use_local_stt"),
		UseLocalTTS:     v.GetBool("user_settings.use_local_tts"),
	}
	if snap.PiperSpeed <= 0 {
		snap.PiperSpeed = 1.0
	}
	return snap, nil
}

// HasRemoteSpeech reports whether the snapshot carries a complete remote
// speech credential pair.
func (s *Snapshot) HasRemoteSpeech() bool {
	return s.SpeechKey != "" && s.SpeechRegion != ""
}

// HasRemoteChat reports whether a remote chat credential is present.
func (s *Snapshot) HasRemoteChat() bool {
	return s.OpenRouterKey != ""
}
