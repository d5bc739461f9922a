package entities

import "style-outfits/internal/domain/valueobjects"

type GenerationRequest struct {
	prompt string
	images []*valueobjects.ImageData
	config *valueobjects.GenerationConfig
}

func NewGenerationRequest(prompt string, images []*valueobjects.ImageData, config *valueobjects.GenerationConfig) *GenerationRequest {
	return &GenerationRequest{
		prompt: prompt,
		images: images,
		config: config,
	}
}

func (r *GenerationRequest) Prompt() string {
	return r.prompt
}

func (r *GenerationRequest) Images() []*valueobjects.ImageData {
	return r.images
}

func (r *GenerationRequest) Config() *valueobjects.GenerationConfig {
	return r.config
}
