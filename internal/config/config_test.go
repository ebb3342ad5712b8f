package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeSettings(t, `
[api_keys]
openrouter_key = sk-or-abc123
azure_speech_key = azkey
azure_speech_region = westeurope

[local_paths]
ollama_model = llama3.2
whisper_path = /opt/whisper/server
whisper_model_path = /opt/whisper/ggml-base.bin
piper_path = /opt/piper/piper
piper_model_path = /opt/piper/en.onnx
piper_speed = 1.3

[user_settings]
ai_persona = IELTS Exam Tutor
prefer_local_llm = true
use_local_stt = true
use_local_tts = false
`)

	snap, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-or-abc123", snap.OpenRouterKey)
	assert.Equal(t, "azkey", snap.SpeechKey)
	assert.Equal(t, "westeurope", snap.SpeechRegion)

	assert.Equal(t, "llama3.2", snap.ChatModel)
	assert.Equal(t, "/opt/whisper/server", snap.WhisperPath)
	assert.Equal(t, "/opt/whisper/ggml-base.bin", snap.WhisperModel)
	assert.Equal(t, "/opt/piper/piper", snap.PiperPath)
	assert.Equal(t, "/opt/piper/en.onnx", snap.PiperModel)
	assert.InDelta(t, 1.3, snap.PiperSpeed, 1e-9)

	assert.Equal(t, "IELTS Exam Tutor", snap.Persona)
	assert.True(t, snap.PreferLocalChat)
	assert.True(t, snap.UseLocalSTT)
	assert.False(t, snap.UseLocalTTS)

	assert.True(t, snap.HasRemoteChat())
	assert.True(t, snap.HasRemoteSpeech())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	snap, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.NoError(t, err)

	assert.Empty(t, snap.OpenRouterKey)
	assert.Empty(t, snap.SpeechKey)
	assert.Empty(t, snap.ChatModel)
	assert.Empty(t, snap.Persona)
	assert.False(t, snap.PreferLocalChat)
	assert.False(t, snap.UseLocalSTT)
	assert.False(t, snap.UseLocalTTS)
	assert.InDelta(t, 1.0, snap.PiperSpeed, 1e-9)

	assert.False(t, snap.HasRemoteChat())
	assert.False(t, snap.HasRemoteSpeech())
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := writeSettings(t, `
[local_paths]
ollama_model = mistral
`)

	snap, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mistral", snap.ChatModel)
	assert.Empty(t, snap.WhisperPath)
	assert.InDelta(t, 1.0, snap.PiperSpeed, 1e-9)
	assert.False(t, snap.PreferLocalChat)
}

func TestLoad_InvalidSpeedFallsBackToNormal(t *testing.T) {
	path := writeSettings(t, `
[local_paths]
piper_speed = -2
`)

	snap, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, snap.PiperSpeed, 1e-9)
}

func TestSnapshot_HasRemoteSpeechNeedsBothHalves(t *testing.T) {
	assert.False(t, (&Snapshot{SpeechKey: "k"}).HasRemoteSpeech())
	assert.False(t, (&Snapshot{SpeechRegion: "eastus"}).HasRemoteSpeech())
	assert.True(t, (&Snapshot{SpeechKey: "k", SpeechRegion: "eastus"}).HasRemoteSpeech())
}
