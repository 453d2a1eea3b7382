package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"

	"github.com/eccentric-easel/easel/internal/models"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is used when re-encoding resized images
const JPEGQuality = 90

// Encoded is an image in the form vision models accept
type Encoded struct {
	Data     string // base64, standard encoding
	MIMEType string
}

// DataURL returns the image as a data: URL
func (e Encoded) DataURL() string {
	return "data:" + e.MIMEType + ";base64," + e.Data
}

// Bytes decodes the base64 payload
func (e Encoded) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.Data)
}

// Encode returns the file contents as base64
func Encode(path string) (string, error) {
	enc, err := Load(path)
	if err != nil {
		return "", err
	}
	return enc.Data, nil
}

// Load reads an image file and returns its encoded form
func Load(path string) (Encoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Encoded{}, models.NewError(models.IOError, "read image", fmt.Errorf("failed to read image: %w", err))
	}

	return Encoded{
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: DetectMIMEType(data),
	}, nil
}

// DetectMIMEType sniffs the image type of data, falling back to image/jpeg
func DetectMIMEType(data []byte) string {
	mime := http.DetectContentType(data)
	switch mime {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return mime
	default:
		// vision endpoints reject octet-stream; photos are jpeg in practice
		return "image/jpeg"
	}
}

// Resize scales the image at path down so neither side exceeds the maximum,
// keeping the aspect ratio, and re-encodes it as JPEG. Images already within
// bounds are only re-encoded.
func Resize(path string, maxWidth, maxHeight int) (*bytes.Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, models.NewError(models.IOError, "open image", fmt.Errorf("failed to open image: %w", err))
	}
	defer file.Close()

	src, format, err := image.Decode(file)
	if err != nil {
		return nil, models.NewError(models.ImageDecodeError, "decode image", fmt.Errorf("failed to decode image: %w", err))
	}

	bounds := src.Bounds()
	width, height := FitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	var out image.Image = src
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, models.NewError(models.ImageDecodeError, "encode image", fmt.Errorf("failed to encode %s as jpeg: %w", format, err))
	}

	return bytes.NewReader(buf.Bytes()), nil
}

// FitWithin returns the largest size with the same aspect ratio as w x h that
// fits in maxW x maxH. It never scales up.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(int(float64(w)*scale), 1)
	nh := max(int(float64(h)*scale), 1)
	return nw, nh
}
