// Package vis draws recognition results onto page images for visual
// inspection.
package vis

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/tsawler/lectio/model"
)

// Colors used for word outlines by confidence band.
var (
	colorHigh = color.RGBA{R: 46, G: 160, B: 67, A: 255}  // green, confident
	colorMid  = color.RGBA{R: 212, G: 167, B: 44, A: 255} // amber, uncertain
	colorLow  = color.RGBA{R: 207, G: 34, B: 46, A: 255}  // red, dubious
)

// Boxer is any element with a pixel-space rectangle and a confidence,
// typically a recognized word projected back onto its page.
type Boxer struct {
	Rect       image.Rectangle
	Confidence float64
}

// Annotate returns a copy of the page image with a colored outline drawn
// around each box. Outline color encodes confidence: green above 0.8,
// amber above 0.5, red otherwise.
func Annotate(page image.Image, boxes []Boxer) *image.RGBA {
	b := page.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), page, b.Min, draw.Src)

	for _, box := range boxes {
		drawRect(out, box.Rect, confidenceColor(box.Confidence))
	}
	return out
}

// DrawResult outlines every recognized word of a structured page on its
// source image. Words without geometry, such as those lifted from an
// embedded text layer, are skipped.
func DrawResult(img image.Image, page *model.Page) *image.RGBA {
	var boxes []Boxer
	if page != nil {
		for _, w := range page.Words() {
			if w.Geometry.IsEmpty() {
				continue
			}
			boxes = append(boxes, Boxer{
				Rect:       w.Geometry.ToAbsolute(page.Width, page.Height),
				Confidence: w.Confidence,
			})
		}
	}
	return Annotate(img, boxes)
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func confidenceColor(confidence float64) color.RGBA {
	switch {
	case confidence > 0.8:
		return colorHigh
	case confidence > 0.5:
		return colorMid
	default:
		return colorLow
	}
}

// drawRect outlines a rectangle with a 2 pixel stroke, clipped to the
// image bounds.
func drawRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	for _, y := range []int{rect.Min.Y, rect.Min.Y + 1, rect.Max.Y - 2, rect.Max.Y - 1} {
		if y < rect.Min.Y || y >= rect.Max.Y {
			continue
		}
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	for _, x := range []int{rect.Min.X, rect.Min.X + 1, rect.Max.X - 2, rect.Max.X - 1} {
		if x < rect.Min.X || x >= rect.Max.X {
			continue
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			img.SetRGBA(x, y, c)
		}
	}
}
