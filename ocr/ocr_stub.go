//go:build !ocr

// Package ocr recovers text from scanned register pages that carry no
// embedded text layer.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. All recognition functions return ErrNotEnabled. To enable
// recognition, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import "errors"

// ErrNotEnabled is returned when recognition is requested but OCR support
// was not compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub client that returns ErrNotEnabled for all operations.
type Client struct{}

// New returns ErrNotEnabled.
func New() (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op for the stub client. It is safe to call on a nil
// client.
func (c *Client) Close() error {
	return nil
}

// RecognizePage returns ErrNotEnabled.
func (c *Client) RecognizePage(imageData []byte) (string, error) {
	return "", ErrNotEnabled
}
