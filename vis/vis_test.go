package vis

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/lectio/geometry"
	"github.com/tsawler/lectio/model"
)

func TestAnnotate_DrawsOutlines(t *testing.T) {
	page := image.NewGray(image.Rect(0, 0, 100, 100))
	for i := range page.Pix {
		page.Pix[i] = 255
	}

	boxes := []Boxer{
		{Rect: image.Rect(10, 10, 40, 25), Confidence: 0.95},
		{Rect: image.Rect(50, 50, 90, 70), Confidence: 0.2},
	}
	out := Annotate(page, boxes)

	if out.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("Expected output bounds to match input, got %v", out.Bounds())
	}
	if got := out.RGBAAt(10, 10); got != colorHigh {
		t.Errorf("Expected high-confidence outline at (10,10), got %v", got)
	}
	if got := out.RGBAAt(50, 50); got != colorLow {
		t.Errorf("Expected low-confidence outline at (50,50), got %v", got)
	}
	// Interior pixels stay untouched.
	if got := out.RGBAAt(25, 17); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("Expected interior pixel to remain white, got %v", got)
	}
}

func TestAnnotate_ClipsOutOfBoundsBoxes(t *testing.T) {
	page := image.NewGray(image.Rect(0, 0, 20, 20))

	out := Annotate(page, []Boxer{
		{Rect: image.Rect(-10, -10, 200, 200), Confidence: 0.9},
		{Rect: image.Rect(50, 50, 60, 60), Confidence: 0.9},
	})
	if out == nil {
		t.Fatal("Expected an image even with out-of-bounds boxes")
	}
}

func TestDrawResult(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 50))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	page := model.NewPage(0, 100, 50)
	page.AddBlock(model.NewBlock([]model.Line{
		model.NewLine([]model.Word{
			{Value: "hi", Confidence: 0.9, Geometry: geometry.NewBBox(0.1, 0.2, 0.4, 0.6)},
			{Value: "skipped", Confidence: 0.9}, // no geometry
		}),
	}))

	out := DrawResult(img, page)
	if got := out.RGBAAt(10, 10); got != colorHigh {
		t.Errorf("Expected outline at (10,10), got %v", got)
	}
	if got := out.RGBAAt(50, 5); got.R != 255 {
		t.Errorf("Expected pixel outside boxes untouched, got %v", got)
	}
}

func TestDrawResult_NilPage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	if out := DrawResult(img, nil); out == nil {
		t.Fatal("Expected an image for a nil page")
	}
}

func TestConfidenceColor(t *testing.T) {
	tests := []struct {
		confidence float64
		want       color.RGBA
	}{
		{0.95, colorHigh},
		{0.8, colorMid},
		{0.6, colorMid},
		{0.5, colorLow},
		{0.1, colorLow},
	}
	for _, tt := range tests {
		if got := confidenceColor(tt.confidence); got != tt.want {
			t.Errorf("confidenceColor(%v) = %v, want %v", tt.confidence, got, tt.want)
		}
	}
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected file to exist, got %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty PNG file")
	}
}

func TestSavePNG_BadPath(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := SavePNG("/nonexistent-dir/out.png", img); err == nil {
		t.Error("Expected error for unwritable path")
	}
}
