package external

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"

	"style-outfits/internal/domain/entities"
)

const ProviderOpenAI = "openai"

// OpenAIGenerationService talks to any OpenAI-compatible chat completions endpoint.
// Safety thresholds have no equivalent there and are ignored.
type OpenAIGenerationService struct {
	client openai.Client
}

func NewOpenAIGenerationService(apiKey, baseURL string) *OpenAIGenerationService {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIGenerationService{
		client: openai.NewClient(opts...),
	}
}

func (s *OpenAIGenerationService) Provider() string {
	return ProviderOpenAI
}

func (s *OpenAIGenerationService) Generate(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
	config := request.Config()
	if config.WantsImage() {
		return nil, ErrImageModalityUnsupported
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(request.Prompt()),
	}
	for _, image := range request.Images() {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    image.DataURI(),
			Detail: "auto",
		}))
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(config.Model()),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	}

	log.Ctx(ctx).Debug().Str("model", config.Model()).Int("images", len(request.Images())).Msg("Calling OpenAI")

	response, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	return entities.NewGenerationResult(response.Choices[0].Message.Content, nil), nil
}
