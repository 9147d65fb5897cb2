package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
)

func TestLLMService_Chat(t *testing.T) {
	var req chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "CPSC 340 covers regression and classification."},
			Done:    true,
		})
	}))
	defer srv.Close()

	svc := NewLLMService(Config{BaseURL: srv.URL, Model: "llama3.2"})

	answer, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: "You are a course advisor."},
		{Role: driven.RoleUser, Content: "Tell me about machine learning courses."},
	}, driven.ChatOptions{MaxTokens: 1024, Temperature: 0.3})
	require.NoError(t, err)

	assert.Equal(t, "CPSC 340 covers regression and classification.", answer)
	assert.False(t, req.Stream)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, driven.RoleSystem, req.Messages[0].Role)
	require.NotNil(t, req.Options)
	assert.Equal(t, 1024, req.Options.NumPredict)
	assert.InDelta(t, 0.3, req.Options.Temperature, 1e-9)
}

func TestLLMService_Chat_ZeroTemperatureTransmitted(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Content: "ok"}, Done: true})
	}))
	defer srv.Close()

	svc := NewLLMService(Config{BaseURL: srv.URL})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: driven.RoleUser, Content: "hi"},
	}, driven.ChatOptions{MaxTokens: 1024, Temperature: 0})
	require.NoError(t, err)

	// An explicit 0 must reach the model rather than falling back to the
	// provider default.
	var options map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["options"], &options))
	assert.JSONEq(t, "0", string(options["temperature"]))
}

func TestLLMService_Chat_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(chatResponse{Error: "model 'missing' not found"})
	}))
	defer srv.Close()

	svc := NewLLMService(Config{BaseURL: srv.URL, Model: "missing"})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: driven.RoleUser, Content: "hi"},
	}, driven.ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLLMService_Defaults(t *testing.T) {
	svc := NewLLMService(Config{})
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestLLMService_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewLLMService(Config{BaseURL: srv.URL})
	assert.NoError(t, svc.Ping(context.Background()))
}
