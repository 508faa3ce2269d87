//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewReturnsErrNotEnabled(t *testing.T) {
	client, err := New()
	if !errors.Is(err, ErrNotEnabled) {
		t.Errorf("New() error = %v, want ErrNotEnabled", err)
	}
	if client != nil {
		t.Error("New() returned a client with OCR disabled")
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close() on nil client = %v", err)
	}
}
