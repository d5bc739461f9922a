package usecases

import (
	"context"
	"fmt"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/errs"
	"style-outfits/internal/domain/valueobjects"
)

type ItemAnalyzer interface {
	AnalyzeClothingItem(ctx context.Context, image *valueobjects.ImageData, overrides valueobjects.SafetySettings) (*entities.ClothingAttributes, error)
}

type AnalysisUseCase struct {
	analyzer ItemAnalyzer
}

func NewAnalysisUseCase(analyzer ItemAnalyzer) *AnalysisUseCase {
	return &AnalysisUseCase{
		analyzer: analyzer,
	}
}

// AnalysisInput carries either raw image bytes or a data URI. Bytes take precedence.
type AnalysisInput struct {
	ImageData    []byte
	MimeType     string
	PhotoDataURI string

	Safety valueobjects.SafetySettings
}

// AnalysisOutput has the shape of a wardrobe item so clients can store it directly.
type AnalysisOutput struct {
	ID           entities.WardrobeItemID `json:"id"`
	PhotoDataURI string                  `json:"photoDataUri"`
	Type         string                  `json:"type"`
	Color        string                  `json:"color"`
	Season       string                  `json:"season"`
	Occasion     string                  `json:"occasion"`
	Tags         []string                `json:"tags"`
}

func (uc *AnalysisUseCase) Execute(ctx context.Context, input AnalysisInput) (*AnalysisOutput, error) {
	image, err := uc.decodeImage(input)
	if err != nil {
		return nil, err
	}

	attrs, err := uc.analyzer.AnalyzeClothingItem(ctx, image, input.Safety)
	if err != nil {
		return nil, err
	}

	reference := input.PhotoDataURI
	if len(input.ImageData) > 0 || reference == "" {
		reference = image.DataURI()
	}

	item := attrs.ToWardrobeItem(entities.NewWardrobeItemID(), reference)

	tags := item.Tags()
	if tags == nil {
		tags = []string{}
	}

	return &AnalysisOutput{
		ID:           item.ID(),
		PhotoDataURI: item.ImageReference(),
		Type:         item.Category(),
		Color:        item.Color(),
		Season:       item.Season(),
		Occasion:     item.Occasion(),
		Tags:         tags,
	}, nil
}

func (uc *AnalysisUseCase) decodeImage(input AnalysisInput) (*valueobjects.ImageData, error) {
	switch {
	case len(input.ImageData) > 0:
		image, err := valueobjects.NewImageData(input.ImageData, input.MimeType)
		if err != nil {
			return nil, errs.NewValidationError("image", fmt.Sprintf("is not a supported image: %v", err))
		}
		return image, nil
	case input.PhotoDataURI != "":
		image, err := valueobjects.ParseDataURI(input.PhotoDataURI)
		if err != nil {
			return nil, errs.NewValidationError("photoDataUri", fmt.Sprintf("is not a valid image data URI: %v", err))
		}
		return image, nil
	default:
		return nil, errs.NewValidationError("image", "is required")
	}
}
