package external

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/errs"
	"style-outfits/internal/domain/valueobjects"
)

func chatCompletionBody(content string) string {
	encoded, _ := json.Marshal(content)
	return `{
		"id": "chatcmpl-test",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "test-model",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": ` + string(encoded) + `}}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`
}

func TestOpenAIGenerationService_Generate(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatCompletionBody("```json\n{\"type\":\"Jeans\"}\n```"))
	}))
	defer server.Close()

	config, err := valueobjects.TextConfig("test-model", nil)
	require.NoError(t, err)
	image, err := valueobjects.NewImageData(testPNG(t), "image/png")
	require.NoError(t, err)

	service := NewOpenAIGenerationService("test-key", server.URL)
	result, err := service.Generate(context.Background(), entities.NewGenerationRequest("describe", []*valueobjects.ImageData{image}, config))

	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"type\":\"Jeans\"}\n```", result.Text())
	assert.Equal(t, "test-model", gotBody["model"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	content := messages[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	imageURL := content[1].(map[string]any)["image_url"].(map[string]any)["url"]
	assert.Equal(t, image.DataURI(), imageURL)
}

func TestOpenAIGenerationService_QuotaError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`)
	}))
	defer server.Close()

	config, err := valueobjects.TextConfig("test-model", nil)
	require.NoError(t, err)

	service := NewOpenAIGenerationService("test-key", server.URL)
	_, err = service.Generate(context.Background(), entities.NewGenerationRequest("hi", nil, config))

	require.Error(t, err)
	assert.True(t, errs.IsQuota(errs.NewExternalServiceError(service.Provider(), err)))
}

func TestOpenAIGenerationService_RejectsImageOutput(t *testing.T) {
	config, err := valueobjects.ImageConfig("test-model", nil)
	require.NoError(t, err)

	_, err = NewOpenAIGenerationService("k", "http://127.0.0.1:1").Generate(context.Background(), entities.NewGenerationRequest("draw", nil, config))

	assert.ErrorIs(t, err, ErrImageModalityUnsupported)
}
