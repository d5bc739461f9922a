package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

const dataURIPrefix = "data:"

type ImageData struct {
	data     []byte
	mimeType string
	format   ImageFormat
}

// NewImageData validates the bytes as a decodable image. An empty mimeType is derived
// from the detected format.
func NewImageData(data []byte, mimeType string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	format, err := detectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/" + string(format)
	}

	return &ImageData{
		data:     data,
		mimeType: mimeType,
		format:   format,
	}, nil
}

// ParseDataURI decodes a base64 data URI such as "data:image/png;base64,iVBOR...".
func ParseDataURI(uri string) (*ImageData, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return nil, fmt.Errorf("not a data URI")
	}

	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, dataURIPrefix), ",")
	if !ok {
		return nil, fmt.Errorf("data URI has no payload")
	}

	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, fmt.Errorf("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}

	return NewImageData(data, mimeType)
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) MimeType() string {
	return i.mimeType
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) IsJPEG() bool {
	return i.format == JPEG
}

func (i *ImageData) ToJPEG() (*ImageData, error) {
	if i.IsJPEG() {
		return i, nil
	}

	reader := bytes.NewReader(i.data)
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: 90}
	if err := jpeg.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	return &ImageData{
		data:     buf.Bytes(),
		mimeType: "image/jpeg",
		format:   JPEG,
	}, nil
}

// Portable re-encodes formats outside PNG and JPEG as JPEG. Vertex AI rejects GIF
// and not every OpenAI-compatible endpoint accepts WebP.
func (i *ImageData) Portable() (*ImageData, error) {
	if i.IsJPEG() || i.format == PNG {
		return i, nil
	}
	return i.ToJPEG()
}

// Fit downsizes the image so that neither side exceeds maxDim, keeping the aspect ratio.
// Images already within bounds are returned unchanged. PNG stays PNG, everything else
// is re-encoded as JPEG.
func (i *ImageData) Fit(maxDim int) (*ImageData, error) {
	if maxDim <= 0 {
		return i, nil
	}

	img, err := imaging.Decode(bytes.NewReader(i.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return i, nil
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	format, outFormat, mimeType := JPEG, imaging.JPEG, "image/jpeg"
	if i.format == PNG {
		format, outFormat, mimeType = PNG, imaging.PNG, "image/png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, outFormat, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return &ImageData{
		data:     buf.Bytes(),
		mimeType: mimeType,
		format:   format,
	}, nil
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

// DataURI renders the image as "data:<mime>;base64,<payload>".
func (i *ImageData) DataURI() string {
	return dataURIPrefix + i.mimeType + ";base64," + i.ToBase64()
}

func detectFormat(data []byte) (ImageFormat, error) {
	reader := bytes.NewReader(data)
	_, format, err := image.DecodeConfig(reader)
	if err != nil {
		return "", err
	}

	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
