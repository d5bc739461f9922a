package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-outfits/internal/domain/valueobjects"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestRunDatauri_Stdout(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "tee.png", 8, 4)

	datauriMaxDim, datauriOutDir = 0, ""
	cmd, out := newTestCommand()

	require.NoError(t, runDatauri(cmd, []string{path}))

	line := strings.TrimSpace(out.String())
	fields := strings.SplitN(line, "\t", 2)
	require.Len(t, fields, 2)
	assert.Equal(t, path, fields[0])

	img, err := valueobjects.ParseDataURI(fields[1])
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType())
}

func TestRunDatauri_ResizesIntoOutDir(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "coat.png", 400, 200)

	datauriMaxDim, datauriOutDir = 100, t.TempDir()
	defer func() { datauriMaxDim, datauriOutDir = 0, "" }()

	cmd, out := newTestCommand()
	require.NoError(t, runDatauri(cmd, []string{path}))
	assert.Empty(t, out.String())

	written, err := os.ReadFile(filepath.Join(datauriOutDir, "coat.txt"))
	require.NoError(t, err)

	img, err := valueobjects.ParseDataURI(string(written))
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(img.Data()))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 50, decoded.Bounds().Dy())
}

func TestRunDatauri_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	datauriMaxDim, datauriOutDir = 0, ""
	cmd, _ := newTestCommand()

	err := runDatauri(cmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestRunConfig_MasksCredentials(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "super-secret")
	t.Setenv("LOG_LEVEL", "error")

	cmd, out := newTestCommand()
	require.NoError(t, runConfig(cmd, nil))

	assert.NotContains(t, out.String(), "super-secret")

	var printed map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, "[redacted]", printed["GeminiAPIKey"])
	assert.Equal(t, "gemini", printed["Provider"])
}

func TestRunGenerate_OpenAI(t *testing.T) {
	reply := `Here you go:
{"outfitSuggestion":[{"photoDataUri":"https://cdn.example.com/tee.png","type":"T-Shirt","description":"tucked in"}],"reasoning":"light layers for a warm brunch"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoded, _ := json.Marshal(reply)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"chatcmpl-test","object":"chat.completion","created":1700000000,"model":"test-model",`+
			`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":`+string(encoded)+`}}]}`)
	}))
	defer server.Close()

	t.Setenv("GENERATION_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", server.URL)
	t.Setenv("MANNEQUIN_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	request := `{
		"wardrobeItems": [{"id": "item-tee", "photoDataUri": "https://cdn.example.com/tee.png", "type": "T-Shirt", "color": "white"}],
		"userStyle": "casual",
		"climate": "warm",
		"occasion": "brunch",
		"mannequinPreference": "Woman"
	}`
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(request), 0o644))

	requestPath = path
	defer func() { requestPath = "-" }()

	cmd, out := newTestCommand()
	require.NoError(t, runGenerate(cmd, nil))

	var printed map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, "light layers for a warm brunch", printed["reasoning"])
	assert.Equal(t, false, printed["mannequinFallback"])
	assert.NotContains(t, printed, "mannequinImage")

	items, ok := printed["outfitSuggestion"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "https://cdn.example.com/tee.png", items[0].(map[string]any)["photoDataUri"])
	assert.Equal(t, "item-tee", items[0].(map[string]any)["id"])
}

func TestRunGenerate_RejectsMalformedRequest(t *testing.T) {
	requestPath = "-"
	cmd, _ := newTestCommand()
	cmd.SetIn(strings.NewReader("{not json"))

	err := runGenerate(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request")
}
