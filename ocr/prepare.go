package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// minRecognitionWidth is the narrowest page image Tesseract handles well;
// narrower scans are upscaled to it.
const minRecognitionWidth = 1200

// Prepare converts a decoded page image into the form the recognizer
// works best on: grayscale, upscaled to at least minRecognitionWidth,
// PNG-encoded.
func Prepare(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty image %dx%d", width, height)
	}

	if width < minRecognitionWidth {
		scale := float64(minRecognitionWidth) / float64(width)
		width = minRecognitionWidth
		height = int(float64(height)*scale + 0.5)
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(gray, gray.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encoding prepared image: %w", err)
	}
	return buf.Bytes(), nil
}
