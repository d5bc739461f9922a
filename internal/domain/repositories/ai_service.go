package repositories

import (
	"context"

	"style-outfits/internal/domain/entities"
)

// GenerationService sends one prompt to a generative model and returns its raw output.
// Implementations never retry; provider failures are returned as-is.
type GenerationService interface {
	Generate(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error)

	// Provider names the backend for logs and error classification.
	Provider() string
}
