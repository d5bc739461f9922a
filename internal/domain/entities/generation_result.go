package entities

import "style-outfits/internal/domain/valueobjects"

// GenerationResult is the raw provider output: free-form text and, when the image
// modality was requested, an optional inline image.
type GenerationResult struct {
	text  string
	image *valueobjects.ImageData
}

func NewGenerationResult(text string, image *valueobjects.ImageData) *GenerationResult {
	return &GenerationResult{
		text:  text,
		image: image,
	}
}

func (r *GenerationResult) Text() string {
	return r.text
}

func (r *GenerationResult) AppendText(text string) {
	r.text += text
}

func (r *GenerationResult) Image() *valueobjects.ImageData {
	return r.image
}

func (r *GenerationResult) SetImage(image *valueobjects.ImageData) {
	r.image = image
}

func (r *GenerationResult) HasImage() bool {
	return r.image != nil
}

// ImageDataURI renders the inline image as a data URI, empty when there is none.
func (r *GenerationResult) ImageDataURI() string {
	if r.image == nil {
		return ""
	}
	return r.image.DataURI()
}
