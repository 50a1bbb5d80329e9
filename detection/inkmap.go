package detection

import (
	"context"
	"image"
	"sort"

	"github.com/tsawler/lectio/geometry"
	"github.com/tsawler/lectio/internal/imaging"
)

// InkDetector localizes text by binarizing the page into an ink map and
// extracting word-shaped connected components.
type InkDetector struct {
	cfg Config
}

// NewInkDetector creates an ink-map detector with the given configuration.
func NewInkDetector(cfg Config) *InkDetector {
	return &InkDetector{cfg: cfg}
}

// Detect implements the Detector interface.
func (d *InkDetector) Detect(ctx context.Context, img image.Image) ([]Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, nil
	}

	work := imaging.ResizeLongest(img, d.cfg.TargetSize)
	gray := imaging.Grayscale(work)
	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()

	ink := imaging.SauvolaThreshold(gray, d.cfg.Window, d.cfg.K)

	// Opening kernel follows the empirical 1 + H/512 law.
	openRadius := (1 + h/512) / 2
	opened := imaging.Open(ink, openRadius)

	glyphs, _ := imaging.Components(opened)
	if len(glyphs) == 0 {
		return nil, nil
	}

	// Fuse characters into word blobs by dilating horizontally; the
	// radius adapts to the median glyph height so dense and sparse pages
	// behave alike.
	fuseRadius := int(float64(medianHeight(glyphs)) * d.cfg.WordFuse)
	if fuseRadius < 1 {
		fuseRadius = 1
	}
	fused := imaging.Dilate(opened, fuseRadius, 0)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates, _ := imaging.Components(fused)

	boxes := make([]Box, 0, len(candidates))
	for _, rect := range candidates {
		// Undo the horizontal growth introduced by fusion.
		rect.Min.X += fuseRadius
		rect.Max.X -= fuseRadius
		if rect.Dx() < d.cfg.MinSizeBox || rect.Dy() < d.cfg.MinSizeBox {
			continue
		}

		score := inkDensity(opened, rect)
		if score < d.cfg.BoxThresh {
			continue
		}

		pad := int(float64(rect.Dy()) * d.cfg.PadRatio)
		rect = rect.Inset(-pad)

		boxes = append(boxes, Box{
			BBox:       geometry.FromAbsolute(rect, w, h),
			Confidence: score,
		})
	}

	sortByConfidence(boxes)
	if d.cfg.MaxCandidates > 0 && len(boxes) > d.cfg.MaxCandidates {
		boxes = boxes[:d.cfg.MaxCandidates]
	}
	return boxes, nil
}

// inkDensity returns the fraction of ink pixels inside rect.
func inkDensity(bm *imaging.Bitmap, rect image.Rectangle) float64 {
	rect = rect.Intersect(image.Rect(0, 0, bm.Width, bm.Height))
	if rect.Empty() {
		return 0
	}
	count := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if bm.Get(x, y) {
				count++
			}
		}
	}
	return float64(count) / float64(rect.Dx()*rect.Dy())
}

func medianHeight(rects []image.Rectangle) int {
	heights := make([]int, len(rects))
	for i, r := range rects {
		heights[i] = r.Dy()
	}
	sort.Ints(heights)
	return heights[len(heights)/2]
}
