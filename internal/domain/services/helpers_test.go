package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/valueobjects"
)

type fakeGenerator struct {
	provider string
	generate func(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error)

	mu    sync.Mutex
	calls []*entities.GenerationRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, request)
	f.mu.Unlock()
	return f.generate(ctx, request)
}

func (f *fakeGenerator) Provider() string {
	if f.provider == "" {
		return "fake"
	}
	return f.provider
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func replyText(text string) *fakeGenerator {
	return &fakeGenerator{
		generate: func(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
			return entities.NewGenerationResult(text, nil), nil
		},
	}
}

func replyError(err error) *fakeGenerator {
	return &fakeGenerator{
		generate: func(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
			return nil, err
		},
	}
}

func blockUntilDone() *fakeGenerator {
	return &fakeGenerator{
		generate: func(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
}

func itemTypes(suggestion *entities.OutfitSuggestion) []string {
	types := make([]string, 0, len(suggestion.SelectedItems()))
	for _, item := range suggestion.SelectedItems() {
		types = append(types, item.Type())
	}
	return types
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{counts: make(map[string]int64)}
}

func (m *countingMetrics) Inc(ctx context.Context, name string, labels map[string]string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := name
	for k, v := range labels {
		key += "{" + k + "=" + v + "}"
	}
	m.counts[key] += n
}

func (m *countingMetrics) get(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

const (
	teeRef   = "https://cdn.example.com/wardrobe/tee.png"
	jeansRef = "https://cdn.example.com/wardrobe/jeans.png"
	bootsRef = "https://cdn.example.com/wardrobe/boots.png"
)

const outfitReply = `{
  "outfitSuggestion": [
    {"photoDataUri": "https://cdn.example.com/wardrobe/tee.png", "type": "T-Shirt", "description": "tucked in loosely"},
    {"photoDataUri": "https://cdn.example.com/wardrobe/jeans.png", "type": "Jeans", "description": "cuffed at the ankle"}
  ],
  "reasoning": "Light breathable layers keep the look relaxed for a warm brunch."
}`

func brunchRequest() *entities.OutfitRequest {
	return entities.NewOutfitRequest(
		[]*entities.WardrobeItem{
			entities.NewWardrobeItem("", teeRef, "T-Shirt", "white", "summer", "casual", []string{"cotton", "basic"}),
			entities.NewWardrobeItem("", jeansRef, "Jeans", "indigo", "all-season", "casual", nil),
			entities.NewWardrobeItem("", bootsRef, "Boots", "", "winter", "outdoor", nil),
		},
		"casual", "warm", "brunch", valueobjects.MannequinWoman,
	)
}

func createTestPNG(t *testing.T, width, height int) *valueobjects.ImageData {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	data, err := valueobjects.NewImageData(buf.Bytes(), "image/png")
	if err != nil {
		t.Fatalf("Failed to create image data: %v", err)
	}
	return data
}
