//go:build !ocr

package recognition

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/tsawler/lectio/ocr"
)

func TestEngineRecognizer_WithoutOCRTag(t *testing.T) {
	reco := NewEngineRecognizer(DefaultConfig())
	crops := []image.Image{image.NewGray(image.Rect(0, 0, 40, 12))}

	_, err := reco.Recognize(context.Background(), crops)
	if !errors.Is(err, ocr.ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got %v", err)
	}
}

func TestEngineRecognizer_EmptyBatch(t *testing.T) {
	reco := NewEngineRecognizer(DefaultConfig())

	words, err := reco.Recognize(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error for empty batch, got %v", err)
	}
	if words != nil {
		t.Errorf("Expected nil result for empty batch, got %v", words)
	}
}
