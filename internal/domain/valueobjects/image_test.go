package valueobjects

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestNewImageData(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "empty data should fail",
			data:    []byte{},
			wantErr: true,
		},
		{
			name:    "nil data should fail",
			data:    nil,
			wantErr: true,
		},
		{
			name:    "invalid image data should fail",
			data:    []byte{0x00, 0x01, 0x02},
			wantErr: true,
		},
		{
			name:    "valid png",
			data:    encodePNG(t, 4, 4),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImageData(tt.data, "image/png")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewImageData() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewImageData_DerivesMimeType(t *testing.T) {
	imageData, err := NewImageData(encodePNG(t, 2, 2), "")
	if err != nil {
		t.Fatalf("NewImageData() error = %v", err)
	}
	if imageData.MimeType() != "image/png" {
		t.Errorf("Expected image/png, got %s", imageData.MimeType())
	}
}

func TestImageData_ToJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	if err != nil {
		t.Fatalf("Failed to create test JPEG: %v", err)
	}

	imageData, err := NewImageData(buf.Bytes(), "image/jpeg")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}

	t.Run("JPEG to JPEG should return same instance", func(t *testing.T) {
		result, err := imageData.ToJPEG()
		if err != nil {
			t.Errorf("ToJPEG() error = %v", err)
		}
		if result != imageData {
			t.Errorf("Expected same instance for JPEG to JPEG conversion")
		}
	})

	t.Run("PNG converts to JPEG", func(t *testing.T) {
		pngData, err := NewImageData(encodePNG(t, 3, 3), "image/png")
		if err != nil {
			t.Fatalf("Failed to create ImageData: %v", err)
		}
		result, err := pngData.ToJPEG()
		if err != nil {
			t.Fatalf("ToJPEG() error = %v", err)
		}
		if !result.IsJPEG() || result.MimeType() != "image/jpeg" {
			t.Errorf("Expected JPEG result, got %s (%s)", result.Format(), result.MimeType())
		}
	})
}

func TestImageData_Portable(t *testing.T) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 6, 4)), nil); err != nil {
		t.Fatalf("Failed to create test GIF: %v", err)
	}
	gifData, err := NewImageData(buf.Bytes(), "")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}

	result, err := gifData.Portable()
	if err != nil {
		t.Fatalf("Portable() error = %v", err)
	}
	if !result.IsJPEG() || result.MimeType() != "image/jpeg" {
		t.Errorf("Expected GIF to become JPEG, got %s (%s)", result.Format(), result.MimeType())
	}

	pngData, err := NewImageData(encodePNG(t, 3, 3), "image/png")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}
	kept, err := pngData.Portable()
	if err != nil {
		t.Fatalf("Portable() error = %v", err)
	}
	if kept != pngData {
		t.Errorf("Expected PNG to be passed through unchanged")
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	original, err := NewImageData(encodePNG(t, 5, 5), "image/png")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}

	uri := original.DataURI()
	if uri[:22] != "data:image/png;base64," {
		t.Fatalf("Unexpected data URI prefix: %s", uri[:22])
	}

	parsed, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI() error = %v", err)
	}
	if !bytes.Equal(parsed.Data(), original.Data()) {
		t.Errorf("Data not preserved through data URI")
	}
}

func TestParseDataURI_Invalid(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{name: "plain URL", uri: "https://example.com/shirt.png"},
		{name: "missing payload", uri: "data:image/png;base64"},
		{name: "not base64", uri: "data:image/png,rawbytes"},
		{name: "broken base64", uri: "data:image/png;base64,!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDataURI(tt.uri); err == nil {
				t.Errorf("Expected error for %q", tt.uri)
			}
		})
	}
}

func TestImageData_Fit(t *testing.T) {
	large, err := NewImageData(encodePNG(t, 200, 100), "image/png")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}

	resized, err := large.Fit(50)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(resized.Data()))
	if err != nil {
		t.Fatalf("Failed to decode resized image: %v", err)
	}
	if cfg.Width != 50 || cfg.Height != 25 {
		t.Errorf("Expected 50x25, got %dx%d", cfg.Width, cfg.Height)
	}
	if resized.Format() != PNG {
		t.Errorf("Expected PNG to stay PNG, got %s", resized.Format())
	}

	small, err := NewImageData(encodePNG(t, 10, 10), "image/png")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}
	same, err := small.Fit(50)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if same != small {
		t.Errorf("Expected image within bounds to be returned unchanged")
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to create test PNG: %v", err)
	}
	return buf.Bytes()
}
