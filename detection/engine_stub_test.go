//go:build !ocr

package detection

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/tsawler/lectio/ocr"
)

func TestEngineDetector_WithoutOCRTag(t *testing.T) {
	det := NewEngineDetector()
	img := image.NewGray(image.Rect(0, 0, 10, 10))

	_, err := det.Detect(context.Background(), img)
	if !errors.Is(err, ocr.ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got %v", err)
	}
}
