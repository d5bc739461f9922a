package external

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/repositories"
	"style-outfits/internal/domain/valueobjects"
)

const ProviderGemini = "gemini"

var geminiHarmCategories = map[valueobjects.HarmCategory]genai.HarmCategory{
	valueobjects.HarmHateSpeech:       genai.HarmCategoryHateSpeech,
	valueobjects.HarmDangerousContent: genai.HarmCategoryDangerousContent,
	valueobjects.HarmHarassment:       genai.HarmCategoryHarassment,
	valueobjects.HarmSexuallyExplicit: genai.HarmCategorySexuallyExplicit,
}

var geminiThresholds = map[valueobjects.SafetyThreshold]genai.HarmBlockThreshold{
	valueobjects.BlockLowAndAbove:    genai.HarmBlockThresholdBlockLowAndAbove,
	valueobjects.BlockMediumAndAbove: genai.HarmBlockThresholdBlockMediumAndAbove,
	valueobjects.BlockOnlyHigh:       genai.HarmBlockThresholdBlockOnlyHigh,
	valueobjects.BlockNone:           genai.HarmBlockThresholdBlockNone,
}

// GeminiGenerationService calls the Gemini API. It is the only provider that can return
// an inline image alongside text.
type GeminiGenerationService struct {
	pool repositories.GenAIClientPool
}

func NewGeminiGenerationService(pool repositories.GenAIClientPool) *GeminiGenerationService {
	return &GeminiGenerationService{
		pool: pool,
	}
}

func (s *GeminiGenerationService) Provider() string {
	return ProviderGemini
}

func (s *GeminiGenerationService) Generate(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
	client, err := s.pool.GetGenAIClient(ctx)
	if err != nil {
		return nil, err
	}

	config := request.Config()

	parts := []*genai.Part{
		genai.NewPartFromText(request.Prompt()),
	}
	for _, image := range request.Images() {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: image.MimeType(),
				Data:     image.Data(),
			},
		})
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	log.Ctx(ctx).Debug().
		Str("model", config.Model()).
		Int("images", len(request.Images())).
		Bool("wants_image", config.WantsImage()).
		Msg("Calling Gemini")

	resp, err := client.Models.GenerateContent(ctx, config.Model(), contents, geminiContentConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return geminiResult(resp)
}

func geminiContentConfig(config *valueobjects.GenerationConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{}

	for _, m := range config.Modalities() {
		out.ResponseModalities = append(out.ResponseModalities, string(m))
	}

	safety := config.Safety()
	for _, category := range safety.Categories() {
		out.SafetySettings = append(out.SafetySettings, &genai.SafetySetting{
			Category:  geminiHarmCategories[category],
			Threshold: geminiThresholds[safety[category]],
		})
	}

	if !config.WantsImage() {
		out.ResponseMIMEType = "application/json"
	}

	return out
}

// geminiResult concatenates the text parts of the first candidate and keeps its first image.
func geminiResult(resp *genai.GenerateContentResponse) (*entities.GenerationResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("no candidates returned")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, fmt.Errorf("candidate has no content (finish reason %s)", candidate.FinishReason)
	}

	result := entities.NewGenerationResult("", nil)
	for _, part := range candidate.Content.Parts {
		switch {
		case part == nil || part.Thought:
			continue
		case part.InlineData != nil:
			if result.HasImage() {
				continue
			}
			image, err := valueobjects.NewImageData(part.InlineData.Data, part.InlineData.MIMEType)
			if err != nil {
				return nil, fmt.Errorf("failed to create image data: %w", err)
			}
			result.SetImage(image)
		case part.Text != "":
			result.AppendText(part.Text)
		}
	}

	return result, nil
}
