package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyconnect/pkg/config"
)

func clientFor(url string, apiKey string) *Client {
	cfg := config.AssistantConfig{
		Endpoint:          url,
		Model:             "test-model",
		SystemInstruction: "be nice",
	}
	return NewClient(cfg, apiKey)
}

func TestCompleteSendsTranscript(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sekrit", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(generateResponse{Text: "hello back"})
	}))
	defer srv.Close()

	history := []Turn{
		{Role: RoleUser, Text: "hi"},
		{Role: RoleAssistant, Text: "hello"},
	}
	reply, err := clientFor(srv.URL, "sekrit").Complete(context.Background(), "how are you?", history)
	require.NoError(t, err)
	assert.Equal(t, "hello back", reply)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, "be nice", got.SystemInstruction)
	require.Len(t, got.Contents, 3)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "model", got.Contents[1].Role, "assistant turns go out as model")
	assert.Equal(t, "user", got.Contents[2].Role)
	assert.Equal(t, "how are you?", got.Contents[2].Parts[0].Text)
}

func TestCompleteErrors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		_, err := clientFor(srv.URL, "").Complete(context.Background(), "hi", nil)
		assert.Error(t, err)
	})

	t.Run("backend error field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(generateResponse{Error: "quota exceeded"})
		}))
		defer srv.Close()
		_, err := clientFor(srv.URL, "").Complete(context.Background(), "hi", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer srv.Close()
		_, err := clientFor(srv.URL, "").Complete(context.Background(), "hi", nil)
		assert.Error(t, err)
	})

	t.Run("no endpoint", func(t *testing.T) {
		_, err := clientFor("", "").Complete(context.Background(), "hi", nil)
		assert.Error(t, err)
	})
}
