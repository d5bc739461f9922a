package external

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/valueobjects"
)

func TestVertexGenerationService_RejectsImageOutput(t *testing.T) {
	config, err := valueobjects.ImageConfig("image-model", nil)
	require.NoError(t, err)

	// The modality check runs before the pool is touched.
	service := NewVertexGenerationService(nil)
	_, err = service.Generate(context.Background(), entities.NewGenerationRequest("draw", nil, config))

	assert.True(t, errors.Is(err, ErrImageModalityUnsupported))
	assert.Equal(t, ProviderVertex, service.Provider())
}

func TestVertexSafetySettings(t *testing.T) {
	got := vertexSafetySettings(valueobjects.SafetySettings{
		valueobjects.HarmSexuallyExplicit: valueobjects.BlockLowAndAbove,
		valueobjects.HarmDangerousContent: valueobjects.BlockMediumAndAbove,
	})

	require.Len(t, got, 2)
	assert.Equal(t, genai.HarmCategoryDangerousContent, got[0].Category)
	assert.Equal(t, genai.HarmBlockMediumAndAbove, got[0].Threshold)
	assert.Equal(t, genai.HarmCategorySexuallyExplicit, got[1].Category)
	assert.Equal(t, genai.HarmBlockLowAndAbove, got[1].Threshold)
}

func TestVertexResult(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"type":"Jeans",`),
				genai.Text(`"color":"blue"}`),
			}},
		}},
	}

	result, err := vertexResult(resp)

	require.NoError(t, err)
	assert.Equal(t, `{"type":"Jeans","color":"blue"}`, result.Text())
	assert.False(t, result.HasImage())

	_, err = vertexResult(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}
