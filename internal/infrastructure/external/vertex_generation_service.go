package external

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/vertexai/genai"
	"github.com/rs/zerolog/log"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/repositories"
	"style-outfits/internal/domain/valueobjects"
)

const ProviderVertex = "vertex"

var ErrImageModalityUnsupported = errors.New("provider does not support image output")

var vertexHarmCategories = map[valueobjects.HarmCategory]genai.HarmCategory{
	valueobjects.HarmHateSpeech:       genai.HarmCategoryHateSpeech,
	valueobjects.HarmDangerousContent: genai.HarmCategoryDangerousContent,
	valueobjects.HarmHarassment:       genai.HarmCategoryHarassment,
	valueobjects.HarmSexuallyExplicit: genai.HarmCategorySexuallyExplicit,
}

var vertexThresholds = map[valueobjects.SafetyThreshold]genai.HarmBlockThreshold{
	valueobjects.BlockLowAndAbove:    genai.HarmBlockLowAndAbove,
	valueobjects.BlockMediumAndAbove: genai.HarmBlockMediumAndAbove,
	valueobjects.BlockOnlyHigh:       genai.HarmBlockOnlyHigh,
	valueobjects.BlockNone:           genai.HarmBlockNone,
}

// VertexGenerationService calls Gemini models through Vertex AI. Text output only.
type VertexGenerationService struct {
	pool repositories.VertexAIClientPool
}

func NewVertexGenerationService(pool repositories.VertexAIClientPool) *VertexGenerationService {
	return &VertexGenerationService{
		pool: pool,
	}
}

func (s *VertexGenerationService) Provider() string {
	return ProviderVertex
}

func (s *VertexGenerationService) Generate(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
	config := request.Config()
	if config.WantsImage() {
		return nil, ErrImageModalityUnsupported
	}

	client, err := s.pool.GetVertexAIClient(ctx)
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(config.Model())
	model.SafetySettings = vertexSafetySettings(config.Safety())
	model.ResponseMIMEType = "application/json"

	parts := []genai.Part{genai.Text(request.Prompt())}
	for _, image := range request.Images() {
		parts = append(parts, genai.Blob{
			MIMEType: image.MimeType(),
			Data:     image.Data(),
		})
	}

	log.Ctx(ctx).Debug().Str("model", config.Model()).Int("images", len(request.Images())).Msg("Calling Vertex AI")

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return vertexResult(resp)
}

func vertexSafetySettings(safety valueobjects.SafetySettings) []*genai.SafetySetting {
	out := make([]*genai.SafetySetting, 0, len(safety))
	for _, category := range safety.Categories() {
		out = append(out, &genai.SafetySetting{
			Category:  vertexHarmCategories[category],
			Threshold: vertexThresholds[safety[category]],
		})
	}
	return out
}

func vertexResult(resp *genai.GenerateContentResponse) (*entities.GenerationResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil {
			return nil, fmt.Errorf("prompt blocked: %v", resp.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("no candidates returned")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, fmt.Errorf("candidate has no content (finish reason %v)", candidate.FinishReason)
	}

	result := entities.NewGenerationResult("", nil)
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			result.AppendText(string(text))
		}
	}

	return result, nil
}
