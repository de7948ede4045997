package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-assistant/internal/campuserr"
)

// writeGenerateResponse writes a minimal successful generateContent payload.
func writeGenerateResponse(w http.ResponseWriter, text string) {
	payload := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	json.NewEncoder(w).Encode(payload)
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err, "API key is mandatory")

	c, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModels, c.Models())
}

func TestClientGenerate(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)

		writeGenerateResponse(w, "  Freshers Day is on September 12.  ")
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := c.Generate(context.Background(), "when is freshers day", "")
	require.NoError(t, err)
	assert.Equal(t, "Freshers Day is on September 12.", answer, "answers are trimmed")

	require.Len(t, paths, 1)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", paths[0])
}

func TestClientGenerateFallsBackToNextModel(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(generateResponse{Error: &apiError{
				Code: 500, Message: "model overloaded", Status: "UNAVAILABLE",
			}})
			return
		}
		writeGenerateResponse(w, "answer from second model")
	}))
	defer server.Close()

	c, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Models:  []string{"model-a", "model-b"},
	})
	require.NoError(t, err)

	answer, err := c.Generate(context.Background(), "question", "")
	require.NoError(t, err)
	assert.Equal(t, "answer from second model", answer)
	assert.Equal(t, 2, calls)
}

func TestClientGenerateAllModelsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Models:  []string{"model-a", "model-b"},
	})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "question", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, campuserr.ErrAIGeneration))
}

func TestClientGenerateEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Models: []string{"model-a"}})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "question", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, campuserr.ErrAIGeneration))
}

func TestClientGenerateStopsOnCanceledContext(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Models:  []string{"model-a", "model-b", "model-c"},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Generate(ctx, "question", "")
	require.Error(t, err)
	assert.LessOrEqual(t, calls, 1, "a dead context must not burn through the cascade")
}

func TestMockGenerator(t *testing.T) {
	m := &MockGenerator{Answer: "canned"}

	answer, err := m.Generate(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, "canned", answer)
	assert.Equal(t, 1, m.Calls)

	m.Err = errors.New("boom")
	_, err = m.Generate(context.Background(), "q", "")
	assert.Error(t, err)
}
