package usecases

import (
	"context"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/valueobjects"
)

type OutfitGenerator interface {
	GenerateOutfit(ctx context.Context, request *entities.OutfitRequest, overrides valueobjects.SafetySettings) (*entities.OutfitSuggestion, error)
}

type OutfitUseCase struct {
	generator OutfitGenerator
}

func NewOutfitUseCase(generator OutfitGenerator) *OutfitUseCase {
	return &OutfitUseCase{
		generator: generator,
	}
}

type WardrobeItemInput struct {
	ID             string   `json:"id,omitempty"`
	ImageReference string   `json:"photoDataUri"`
	Type           string   `json:"type"`
	Color          string   `json:"color"`
	Season         string   `json:"season"`
	Occasion       string   `json:"occasion"`
	Tags           []string `json:"tags,omitempty"`
}

type OutfitInput struct {
	WardrobeItems       []WardrobeItemInput `json:"wardrobeItems"`
	UserStyle           string              `json:"userStyle"`
	Climate             string              `json:"climate"`
	Occasion            string              `json:"occasion"`
	MannequinPreference string              `json:"mannequinPreference"`

	Safety valueobjects.SafetySettings `json:"-"`
}

// SelectedItemOutput carries the id of the matching wardrobe item when the model reused a
// supplied reference. Unknown references have no id.
type SelectedItemOutput struct {
	ID           entities.WardrobeItemID `json:"id,omitempty"`
	PhotoDataURI string                  `json:"photoDataUri"`
	Type         string                  `json:"type"`
	Description  string                  `json:"description,omitempty"`
}

type OutfitOutput struct {
	RequestID         entities.OutfitRequestID `json:"requestId"`
	OutfitSuggestion  []SelectedItemOutput     `json:"outfitSuggestion"`
	Reasoning         string                   `json:"reasoning"`
	MannequinImage    string                   `json:"mannequinImage,omitempty"`
	MannequinFallback bool                     `json:"mannequinFallback"`
	Stage             entities.GenerationStage `json:"stage"`
}

func (uc *OutfitUseCase) Execute(ctx context.Context, input OutfitInput) (*OutfitOutput, error) {
	request := uc.toRequest(input)

	suggestion, err := uc.generator.GenerateOutfit(ctx, request, input.Safety)
	if err != nil {
		return nil, err
	}

	output := &OutfitOutput{
		RequestID:        request.ID(),
		OutfitSuggestion: make([]SelectedItemOutput, 0, len(suggestion.SelectedItems())),
		Reasoning:        suggestion.Reasoning(),
		MannequinImage:   suggestion.MannequinImage(),
		Stage:            suggestion.Stage(),
	}
	if mannequin, ok := suggestion.Mannequin(); ok {
		output.MannequinFallback = mannequin.UsedFallback()
	}

	for _, item := range suggestion.SelectedItems() {
		selected := SelectedItemOutput{
			PhotoDataURI: item.ImageReference(),
			Type:         item.Type(),
			Description:  item.Description(),
		}
		if source, ok := request.ItemByReference(item.ImageReference()); ok {
			selected.ID = source.ID()
		}
		output.OutfitSuggestion = append(output.OutfitSuggestion, selected)
	}

	return output, nil
}

func (uc *OutfitUseCase) toRequest(input OutfitInput) *entities.OutfitRequest {
	items := make([]*entities.WardrobeItem, 0, len(input.WardrobeItems))
	for _, item := range input.WardrobeItems {
		items = append(items, entities.NewWardrobeItem(
			entities.WardrobeItemID(item.ID),
			item.ImageReference,
			item.Type,
			item.Color,
			item.Season,
			item.Occasion,
			item.Tags,
		))
	}

	preference := valueobjects.MannequinPreference(input.MannequinPreference)
	if preference == "" {
		preference = valueobjects.MannequinNeutral
	}

	return entities.NewOutfitRequest(items, input.UserStyle, input.Climate, input.Occasion, preference)
}
