package detection

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/tsawler/lectio/geometry"
	"github.com/tsawler/lectio/ocr"
)

// EngineDetector delegates text localization to the OCR engine's own page
// segmentation. It requires the ocr build tag; without it every call
// reports ocr.ErrOCRNotEnabled.
type EngineDetector struct{}

// NewEngineDetector creates a detector backed by the OCR engine.
func NewEngineDetector() *EngineDetector {
	return &EngineDetector{}
}

// Detect implements the Detector interface.
func (d *EngineDetector) Detect(ctx context.Context, img image.Image) ([]Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding page image: %w", err)
	}

	words, err := client.WordBoxes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("segmenting page: %w", err)
	}

	b := img.Bounds()
	boxes := make([]Box, 0, len(words))
	for _, word := range words {
		boxes = append(boxes, Box{
			BBox:       geometry.FromAbsolute(word.Rect, b.Dx(), b.Dy()),
			Confidence: word.Confidence,
		})
	}
	sortByConfidence(boxes)
	return boxes, nil
}
