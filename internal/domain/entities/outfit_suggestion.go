package entities

import "style-outfits/internal/domain/valueobjects"

// GenerationStage tracks how far a single outfit generation progressed.
type GenerationStage string

const (
	StageStart               GenerationStage = "start"
	StagePrimaryGenerating   GenerationStage = "primary_generating"
	StagePrimarySucceeded    GenerationStage = "primary_succeeded"
	StagePrimaryFailed       GenerationStage = "primary_failed"
	StageSecondaryGenerating GenerationStage = "secondary_generating"
	StageSecondarySucceeded  GenerationStage = "secondary_succeeded"
	StageSecondaryFailed     GenerationStage = "secondary_failed"
)

// SelectedItem is one wardrobe piece chosen by the model, referenced by its image.
type SelectedItem struct {
	imageReference string
	itemType       string
	description    string
}

func NewSelectedItem(imageReference, itemType, description string) SelectedItem {
	return SelectedItem{
		imageReference: imageReference,
		itemType:       itemType,
		description:    description,
	}
}

func (s SelectedItem) ImageReference() string {
	return s.imageReference
}

func (s SelectedItem) Type() string {
	return s.itemType
}

func (s SelectedItem) Description() string {
	return s.description
}

type OutfitSuggestion struct {
	selectedItems []SelectedItem
	reasoning     string
	mannequin     *valueobjects.Degradable[string]
	stage         GenerationStage
}

func NewOutfitSuggestion(selectedItems []SelectedItem, reasoning string) *OutfitSuggestion {
	return &OutfitSuggestion{
		selectedItems: selectedItems,
		reasoning:     reasoning,
		stage:         StagePrimarySucceeded,
	}
}

func (s *OutfitSuggestion) SelectedItems() []SelectedItem {
	return s.selectedItems
}

func (s *OutfitSuggestion) Reasoning() string {
	return s.reasoning
}

// Mannequin reports the mannequin outcome; ok is false when no mannequin step ran.
func (s *OutfitSuggestion) Mannequin() (valueobjects.Degradable[string], bool) {
	if s.mannequin == nil {
		return valueobjects.Degradable[string]{}, false
	}
	return *s.mannequin, true
}

// MannequinImage is the image reference to show, empty when unset.
func (s *OutfitSuggestion) MannequinImage() string {
	if s.mannequin == nil {
		return ""
	}
	return s.mannequin.Value()
}

func (s *OutfitSuggestion) SetMannequin(mannequin valueobjects.Degradable[string]) {
	s.mannequin = &mannequin
	if mannequin.UsedFallback() {
		s.stage = StageSecondaryFailed
	} else {
		s.stage = StageSecondarySucceeded
	}
}

func (s *OutfitSuggestion) Stage() GenerationStage {
	return s.stage
}

func (s *OutfitSuggestion) SetStage(stage GenerationStage) {
	s.stage = stage
}
