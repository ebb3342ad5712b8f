// Package router decides, per capability, which backend a configuration
// snapshot can reach. Resolve is a pure function: it has no side effects,
// touches no network, and its result is only valid for the snapshot it was
// computed from. Recompute it whenever the snapshot is replaced.
package router

import "github.com/normanking/voicekit/internal/config"

// Route is the three-valued backend choice for one capability.
type Route int

const (
	Unavailable Route = iota
	Local
	Remote
)

func (r Route) String() string {
	switch r {
	case Local:
		return "local"
	case Remote:
		return "remote"
	default:
		return "unavailable"
	}
}

// Decision holds one route per capability.
type Decision struct {
	Chat Route
	STT  Route
	TTS  Route
}

// Resolve computes the routing decision for a snapshot. Each capability is
// decided independently.
func Resolve(snap *config.Snapshot) Decision {
	return Decision{
		Chat: resolveChat(snap),
		STT:  resolveSTT(snap),
		TTS:  resolveTTS(snap),
	}
}

// resolveChat prefers the local model when one is configured and either no
// remote credential exists or the user asked for local explicitly.
func resolveChat(snap *config.Snapshot) Route {
	if snap.ChatModel != "" && (!snap.HasRemoteChat() || snap.PreferLocalChat) {
		return Local
	}
	if snap.HasRemoteChat() {
		return Remote
	}
	return Unavailable
}

// resolveSTT: local needs executable + model + the use_local_stt flag and
// wins over a configured remote; remote needs the speech key/region pair.
func resolveSTT(snap *config.Snapshot) Route {
	if snap.UseLocalSTT && snap.WhisperPath != "" && snap.WhisperModel != "" {
		return Local
	}
	if snap.HasRemoteSpeech() {
		return Remote
	}
	return Unavailable
}

// resolveTTS mirrors resolveSTT with the synthesis paths and the shared
// speech credential pair.
func resolveTTS(snap *config.Snapshot) Route {
	if snap.UseLocalTTS && snap.PiperPath != "" && snap.PiperModel != "" {
		return Local
	}
	if snap.HasRemoteSpeech() {
		return Remote
	}
	return Unavailable
}
