package ai_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"immobiliare-gpt-backend/internal/ai"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func TestOpenAIClient_Complete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "gpt-4-0613",
			"choices": [{"message": {"role": "assistant", "content": "Splendida villa"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	client := ai.NewOpenAIClient(srv.URL+"/v1/", "test-key", "gpt-image-1")
	c, err := client.Complete(context.Background(), ai.Request{
		Prompt:       "describe",
		SystemPrompt: "you are a copywriter",
		Model:        "gpt-4",
		MaxTokens:    300,
	})
	require.NoError(t, err)

	assert.Equal(t, "Splendida villa", c.Content)
	assert.Equal(t, "gpt-4-0613", c.Model)
	assert.Equal(t, ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, c.Usage)

	assert.Equal(t, "gpt-4", got["model"])
	assert.EqualValues(t, 300, got["max_tokens"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "describe", messages[1].(map[string]any)["content"])
}

func TestOpenAIClient_CompleteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := ai.NewOpenAIClient(srv.URL, "bad-key", "gpt-image-1")
	_, err := client.Complete(context.Background(), ai.Request{Prompt: "hi", Model: "gpt-4"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestOpenAIClient_EditImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/edits", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "gpt-image-1", r.FormValue("model"))
		assert.NotEmpty(t, r.FormValue("prompt"))

		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, "kitchen.jpg", hdr.Filename)
		assert.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(pngBytes)}},
		})
	}))
	defer srv.Close()

	client := ai.NewOpenAIClient(srv.URL, "test-key", "gpt-image-1")
	out, err := client.EditImage(context.Background(), ai.Image{
		Name:        "kitchen.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("\xFF\xD8\xFF\xE0 jpeg"),
	}, ai.EnhancePrompt)
	require.NoError(t, err)

	assert.Equal(t, pngBytes, out.Data)
	assert.Equal(t, "image/png", out.ContentType)
}

func TestOpenAIClient_EditImageEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := ai.NewOpenAIClient(srv.URL, "test-key", "gpt-image-1")
	_, err := client.EditImage(context.Background(), ai.Image{Name: "a.png", ContentType: "image/png", Data: pngBytes}, "p")
	assert.ErrorIs(t, err, ai.ErrNoImage)
}
