package repositories

import (
	"context"

	"cloud.google.com/go/vertexai/genai" // VertexAI
	genai_std "google.golang.org/genai"
)

// Shared settings for lazily created provider clients.
type AIClientConfig struct {
	ProjectID    string
	Location     string
	GeminiAPIKey string
}

// VertexAIClientPool hands out a single Vertex AI client.
type VertexAIClientPool interface {
	GetVertexAIClient(ctx context.Context) (*genai.Client, error)

	Close() error
}

// GenAIClientPool hands out a single Gemini API client.
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai_std.Client, error)

	Close() error
}

// ClientPoolService owns every provider client of the process.
type ClientPoolService interface {
	VertexAIPool() VertexAIClientPool

	GenAIPool() GenAIClientPool

	Config() *AIClientConfig

	Close() error
}
