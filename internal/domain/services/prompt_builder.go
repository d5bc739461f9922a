package services

import (
	"fmt"
	"strings"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/valueobjects"
)

const unspecified = "unspecified"

const outfitSchema = `{
  "outfitSuggestion": [
    {
      "photoDataUri": string,
      "type": string,
      "description": string
    }
  ],
  "reasoning": string
}`

const analysisSchema = `{
  "type": string,
  "color": string,
  "season": string,
  "occasion": string,
  "tags": [string]
}`

// BuildOutfitPrompt validates the request and renders the outfit instruction. The output
// depends only on the request, so identical requests yield identical prompts.
func BuildOutfitPrompt(request *entities.OutfitRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString("You are a personal fashion stylist. Put together one complete outfit using only the wardrobe items listed below.\n\n")

	sb.WriteString("User style: " + request.UserStyle() + "\n")
	sb.WriteString("Climate: " + request.Climate() + "\n")
	sb.WriteString("Occasion: " + request.Occasion() + "\n")
	sb.WriteString("Mannequin preference: " + string(request.MannequinPreference()) + "\n\n")

	sb.WriteString("Wardrobe items:\n")
	for i, item := range request.WardrobeItems() {
		fmt.Fprintf(&sb, "%d. Type: %s\n", i+1, item.Category())
		fmt.Fprintf(&sb, "   Color: %s\n", orUnspecified(item.Color()))
		fmt.Fprintf(&sb, "   Season: %s\n", orUnspecified(item.Season()))
		fmt.Fprintf(&sb, "   Occasion: %s\n", orUnspecified(item.Occasion()))
		if tags := item.Tags(); len(tags) > 0 {
			fmt.Fprintf(&sb, "   Tags: %s\n", strings.Join(tags, ", "))
		}
		fmt.Fprintf(&sb, "   photoDataUri: %s\n", item.ImageReference())
	}

	sb.WriteString("\nReturn a single JSON object and nothing else, conforming to this schema:\n")
	sb.WriteString(outfitSchema)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("1. Every photoDataUri must be copied verbatim from the wardrobe items above. Never invent new image references.\n")
	sb.WriteString("2. Pick pieces that suit the climate and the occasion, and at most one item per garment type.\n")
	sb.WriteString("3. description is a short phrase about how the piece is worn in this outfit.\n")
	sb.WriteString("4. reasoning explains in a few sentences why the outfit matches the user style, climate and occasion.\n")

	return sb.String(), nil
}

// BuildMannequinPrompt describes the chosen outfit for the image model.
func BuildMannequinPrompt(suggestion *entities.OutfitSuggestion, preference valueobjects.MannequinPreference) string {
	var sb strings.Builder

	sb.WriteString("Generate a photorealistic full-body image of a " + preference.Figure() + " wearing the following outfit:\n")
	for _, item := range suggestion.SelectedItems() {
		if item.Description() != "" {
			sb.WriteString("- " + item.Type() + ": " + item.Description() + "\n")
		} else {
			sb.WriteString("- " + item.Type() + "\n")
		}
	}
	sb.WriteString("Show the whole outfit from head to toe on a plain light-gray studio background with soft, even lighting. ")
	sb.WriteString("Do not add garments or accessories that are not listed, and do not include any text in the image.")

	return sb.String()
}

// BuildAnalysisPrompt asks for the attributes of the clothing item in the attached photo.
func BuildAnalysisPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a fashion cataloguing assistant. Analyze the single clothing item in the attached photo.\n")
	sb.WriteString("Return a single JSON object and nothing else, conforming to this schema:\n")
	sb.WriteString(analysisSchema)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("1. type is the garment type, for example T-Shirt, Jeans, Blazer, Sneakers.\n")
	sb.WriteString("2. color is the dominant color in plain English.\n")
	sb.WriteString("3. season is one of spring, summer, autumn, winter, all-season.\n")
	sb.WriteString("4. occasion is the setting the item suits best, for example casual, office, party, sport.\n")
	sb.WriteString("5. tags holds up to five short descriptive keywords such as fabric, fit or pattern.\n")

	return sb.String()
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return unspecified
	}
	return s
}
