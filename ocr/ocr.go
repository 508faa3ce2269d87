//go:build ocr

// Package ocr recovers text from scanned register pages that carry no
// embedded text layer.
//
// This implementation wraps the Tesseract engine via gosseract and is
// compiled in with the "ocr" build tag. It requires Tesseract to be
// installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for page recognition.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it when no longer needed to release
// the engine's resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("configuring language: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases the underlying engine.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizePage performs OCR on encoded image data (PNG, TIFF, JPEG).
// Register pages scan best after Prepare; pass the prepared encoding here.
func (c *Client) RecognizePage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing page: %w", err)
	}

	return strings.TrimSpace(text), nil
}
