package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/voicekit/internal/backend"
)

func TestRemoteClient_Complete_SendsCredentialHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "voicekit", r.Header.Get("X-Title"))

		w.Write([]byte(`{"choices":[{"message":{"content":"Sure."}}]}`))
	}))
	defer server.Close()

	client := NewRemoteClient(RemoteConfig{
		Endpoint: server.URL,
		APIKey:   "sk-test",
		Model:    "mistralai/mistral-7b-instruct",
	}, zerolog.Nop())

	reply, err := client.Complete(context.Background(), Payload{
		SystemPrompt: "p",
		History:      []Message{{Role: RoleUser, Content: "Hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Sure.", reply)
}

func TestRemoteClient_Complete_NoKey(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer server.Close()

	client := NewRemoteClient(RemoteConfig{Endpoint: server.URL, Model: "m"}, zerolog.Nop())

	_, err := client.Complete(context.Background(), Payload{SystemPrompt: "p"})

	require.Error(t, err)
	assert.True(t, backend.IsKind(err, backend.KindConfiguration), "got %v", err)
	assert.False(t, hit, "adapter must not touch the network without a credential")
}

func TestRemoteClient_Complete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer server.Close()

	client := NewRemoteClient(RemoteConfig{Endpoint: server.URL, APIKey: "sk-test", Model: "m"}, zerolog.Nop())

	_, err := client.Complete(context.Background(), Payload{SystemPrompt: "p"})

	require.Error(t, err)
	assert.True(t, backend.IsKind(err, backend.KindTransport), "got %v", err)
	// Error strings carry the cause but never the credential.
	assert.NotContains(t, err.Error(), "sk-test")
}

func TestNewRemoteClient_Defaults(t *testing.T) {
	client := NewRemoteClient(RemoteConfig{APIKey: "k", Model: "m"}, zerolog.Nop())

	assert.Equal(t, DefaultRemoteEndpoint, client.config.Endpoint)
	assert.Equal(t, "http://localhost", client.config.Referer)
	assert.Equal(t, "voicekit", client.config.Title)
}
