package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownName(t *testing.T) {
	p := Get("IELTS Exam Tutor")
	assert.Equal(t, "IELTS Exam Tutor", p.Name)
	assert.NotEmpty(t, p.SystemPrompt)
}

func TestGet_UnknownNameFallsBackToDefault(t *testing.T) {
	for _, name := range []string{"", "Pirate Captain", "simple english tutor"} {
		p := Get(name)
		assert.Equal(t, DefaultName, p.Name, "input %q", name)
	}
}

func TestNames_MatchRegistryOrder(t *testing.T) {
	names := Names()
	require.Len(t, names, len(Available()))
	for i, p := range Available() {
		assert.Equal(t, p.Name, names[i])
	}
	assert.Contains(t, names, DefaultName)
}

func TestAvailable_ReturnsACopy(t *testing.T) {
	first := Available()
	first[0].SystemPrompt = "tampered"
	assert.NotEqual(t, "tampered", Available()[0].SystemPrompt)
}

func TestEveryPersonaHasAPrompt(t *testing.T) {
	for _, p := range Available() {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.SystemPrompt, "persona %s", p.Name)
	}
}
