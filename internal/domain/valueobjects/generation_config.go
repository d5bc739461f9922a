package valueobjects

import (
	"fmt"
	"slices"
	"sort"
)

type HarmCategory string
type SafetyThreshold string
type Modality string

const (
	HarmHateSpeech       HarmCategory = "hate_speech"
	HarmDangerousContent HarmCategory = "dangerous_content"
	HarmHarassment       HarmCategory = "harassment"
	HarmSexuallyExplicit HarmCategory = "sexually_explicit"
)

const (
	BlockLowAndAbove    SafetyThreshold = "block_low_and_above"
	BlockMediumAndAbove SafetyThreshold = "block_medium_and_above"
	BlockOnlyHigh       SafetyThreshold = "block_only_high"
	BlockNone           SafetyThreshold = "block_none"
)

const (
	ModalityText  Modality = "TEXT"
	ModalityImage Modality = "IMAGE"
)

// HarmCategories lists every category a SafetySettings map may configure.
var HarmCategories = []HarmCategory{
	HarmHateSpeech,
	HarmDangerousContent,
	HarmHarassment,
	HarmSexuallyExplicit,
}

func ParseHarmCategory(s string) (HarmCategory, error) {
	c := HarmCategory(s)
	if !slices.Contains(HarmCategories, c) {
		return "", fmt.Errorf("unknown harm category: %q", s)
	}
	return c, nil
}

func ParseSafetyThreshold(s string) (SafetyThreshold, error) {
	switch t := SafetyThreshold(s); t {
	case BlockLowAndAbove, BlockMediumAndAbove, BlockOnlyHigh, BlockNone:
		return t, nil
	default:
		return "", fmt.Errorf("unknown safety threshold: %q", s)
	}
}

// SafetySettings maps a harm category to the severity at which content is blocked.
// Categories absent from the map use the provider default.
type SafetySettings map[HarmCategory]SafetyThreshold

// UniformSafety applies one threshold to all categories.
func UniformSafety(threshold SafetyThreshold) SafetySettings {
	s := make(SafetySettings, len(HarmCategories))
	for _, c := range HarmCategories {
		s[c] = threshold
	}
	return s
}

// Merge returns a copy of s with the entries of overrides applied on top.
func (s SafetySettings) Merge(overrides SafetySettings) SafetySettings {
	out := make(SafetySettings, len(s)+len(overrides))
	for c, t := range s {
		out[c] = t
	}
	for c, t := range overrides {
		out[c] = t
	}
	return out
}

// Validate rejects unknown categories and thresholds.
func (s SafetySettings) Validate() error {
	for c, t := range s {
		if _, err := ParseHarmCategory(string(c)); err != nil {
			return err
		}
		if _, err := ParseSafetyThreshold(string(t)); err != nil {
			return err
		}
	}
	return nil
}

// Categories returns the configured categories in a stable order.
func (s SafetySettings) Categories() []HarmCategory {
	out := make([]HarmCategory, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GenerationConfig is the per-call provider configuration: model identifier, requested
// response modalities and safety thresholds.
type GenerationConfig struct {
	model      string
	modalities []Modality
	safety     SafetySettings
}

func NewGenerationConfig(model string, modalities []Modality, safety SafetySettings) (*GenerationConfig, error) {
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	if len(modalities) == 0 {
		modalities = []Modality{ModalityText}
	}
	for _, m := range modalities {
		if m != ModalityText && m != ModalityImage {
			return nil, fmt.Errorf("unsupported modality: %q", m)
		}
	}

	if err := safety.Validate(); err != nil {
		return nil, err
	}

	return &GenerationConfig{
		model:      model,
		modalities: slices.Clone(modalities),
		safety:     safety.Merge(nil),
	}, nil
}

// TextConfig is a text-only configuration.
func TextConfig(model string, safety SafetySettings) (*GenerationConfig, error) {
	return NewGenerationConfig(model, []Modality{ModalityText}, safety)
}

// ImageConfig asks for text and an inline image in the same response.
func ImageConfig(model string, safety SafetySettings) (*GenerationConfig, error) {
	return NewGenerationConfig(model, []Modality{ModalityText, ModalityImage}, safety)
}

func (c *GenerationConfig) Model() string {
	return c.model
}

func (c *GenerationConfig) Modalities() []Modality {
	return c.modalities
}

func (c *GenerationConfig) Safety() SafetySettings {
	return c.safety
}

func (c *GenerationConfig) WantsImage() bool {
	return slices.Contains(c.modalities, ModalityImage)
}
