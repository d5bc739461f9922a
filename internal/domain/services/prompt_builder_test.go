package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/errs"
	"style-outfits/internal/domain/valueobjects"
)

func TestBuildOutfitPrompt(t *testing.T) {
	request := brunchRequest()

	prompt, err := BuildOutfitPrompt(request)
	require.NoError(t, err)

	for _, item := range request.WardrobeItems() {
		assert.Contains(t, prompt, item.Category())
		assert.Contains(t, prompt, item.ImageReference())
		if item.Color() != "" {
			assert.Contains(t, prompt, item.Color())
		}
	}
	assert.Contains(t, prompt, "Color: unspecified")
	assert.Contains(t, prompt, "Tags: cotton, basic")
	assert.Contains(t, prompt, "User style: casual")
	assert.Contains(t, prompt, "Climate: warm")
	assert.Contains(t, prompt, "Occasion: brunch")
	assert.Contains(t, prompt, `"outfitSuggestion"`)
	assert.Contains(t, prompt, `"reasoning"`)

	again, err := BuildOutfitPrompt(request)
	require.NoError(t, err)
	assert.Equal(t, prompt, again)
}

func TestBuildOutfitPrompt_InvalidRequest(t *testing.T) {
	tests := []struct {
		name      string
		request   *entities.OutfitRequest
		wantField string
	}{
		{
			name:      "empty wardrobe",
			request:   entities.NewOutfitRequest(nil, "casual", "warm", "brunch", valueobjects.MannequinMan),
			wantField: "wardrobeItems",
		},
		{
			name: "missing climate",
			request: entities.NewOutfitRequest(
				[]*entities.WardrobeItem{entities.NewWardrobeItem("", teeRef, "T-Shirt", "white", "", "", nil)},
				"casual", "", "brunch", valueobjects.MannequinMan,
			),
			wantField: "climate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := BuildOutfitPrompt(tt.request)

			assert.Empty(t, prompt)
			var validationErr *errs.ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestBuildMannequinPrompt(t *testing.T) {
	suggestion := entities.NewOutfitSuggestion([]entities.SelectedItem{
		entities.NewSelectedItem(teeRef, "T-Shirt", "tucked in loosely"),
		entities.NewSelectedItem(jeansRef, "Jeans", ""),
	}, "relaxed")

	prompt := BuildMannequinPrompt(suggestion, valueobjects.MannequinMan)

	assert.Contains(t, prompt, "male mannequin")
	assert.Contains(t, prompt, "- T-Shirt: tucked in loosely\n")
	assert.Contains(t, prompt, "- Jeans\n")
	assert.NotContains(t, prompt, teeRef)
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := BuildAnalysisPrompt()

	for _, key := range []string{`"type"`, `"color"`, `"season"`, `"occasion"`, `"tags"`} {
		assert.True(t, strings.Contains(prompt, key), "prompt should mention %s", key)
	}
}
