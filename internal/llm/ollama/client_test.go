package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forkful/saucier/internal/llm"
	"github.com/forkful/saucier/internal/llm/ollama"
)

func TestGenerateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral", req["model"])
		assert.Equal(t, false, req["stream"])
		opts := req["options"].(map[string]any)
		assert.Equal(t, 0.7, opts["temperature"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "mistral",
			"response": "{\"title\":\"Pasta\"}",
			"done": true,
			"prompt_eval_count": 20,
			"eval_count": 108
		}`))
	}))
	defer server.Close()

	client := ollama.New(ollama.Config{BaseURL: server.URL, Model: "mistral"})

	resp, err := client.Generate(context.Background(), &llm.Request{
		Prompt:      "make pasta",
		Model:       "mistral",
		Temperature: 0.7,
	})

	assert.NoError(t, err)
	assert.Equal(t, llm.StatusSuccess, resp.Status)
	assert.Equal(t, `{"title":"Pasta"}`, resp.Content)
	assert.Equal(t, 128, resp.TokensUsed)
	assert.True(t, resp.IsSuccess())
}

func TestGenerateHTTPErrorBecomesErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
	}))
	defer server.Close()

	client := ollama.New(ollama.Config{BaseURL: server.URL, Model: "mistral"})

	resp, err := client.Generate(context.Background(), &llm.Request{Prompt: "hi"})

	// A backend that answered with a failure status is not a transport error.
	assert.NoError(t, err)
	assert.Equal(t, llm.StatusError, resp.Status)
	assert.Contains(t, resp.ErrorMessage, "500")
	assert.False(t, resp.IsSuccess())
}

func TestGenerateBodyErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"invalid prompt"}`))
	}))
	defer server.Close()

	client := ollama.New(ollama.Config{BaseURL: server.URL, Model: "mistral"})

	resp, err := client.Generate(context.Background(), &llm.Request{Prompt: "hi"})

	assert.NoError(t, err)
	assert.Equal(t, llm.StatusError, resp.Status)
	assert.Equal(t, "invalid prompt", resp.ErrorMessage)
}

func TestGenerateTransportFault(t *testing.T) {
	client := ollama.New(ollama.Config{BaseURL: "http://127.0.0.1:0", Model: "mistral"})

	_, err := client.Generate(context.Background(), &llm.Request{Prompt: "hi"})
	assert.Error(t, err)
}

func TestIsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	client := ollama.New(ollama.Config{BaseURL: server.URL, Model: "mistral"})
	assert.True(t, client.IsAvailable(context.Background()))

	server.Close()
	assert.False(t, client.IsAvailable(context.Background()))
}

func TestModelName(t *testing.T) {
	client := ollama.New(ollama.Config{Model: "mistral"})
	assert.Equal(t, "mistral", client.ModelName())
}
