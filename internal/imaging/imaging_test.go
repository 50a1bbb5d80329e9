package imaging

import (
	"image"
	"image/color"
	"testing"
)

// makeTestImage creates a white image with a black rectangle drawn on it.
func makeTestImage(w, h int, ink image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if image.Pt(x, y).In(ink) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestGrayscale_PassThrough(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 4))
	if Grayscale(g) != g {
		t.Error("Expected gray input to be returned unchanged")
	}
}

func TestGrayscale_ConvertsRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 1, color.RGBA{A: 255})

	g := Grayscale(img)
	if g.Bounds().Dx() != 2 || g.Bounds().Dy() != 2 {
		t.Fatalf("Unexpected bounds: %v", g.Bounds())
	}
	if g.GrayAt(0, 0).Y < 200 {
		t.Errorf("Expected white pixel, got %d", g.GrayAt(0, 0).Y)
	}
	if g.GrayAt(1, 1).Y > 50 {
		t.Errorf("Expected black pixel, got %d", g.GrayAt(1, 1).Y)
	}
}

func TestResizeLongest(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		target   int
		wantW    int
		wantH    int
		noResize bool
	}{
		{"landscape", 200, 100, 100, 100, 50, false},
		{"portrait", 100, 400, 100, 25, 100, false},
		{"already small", 50, 80, 100, 50, 80, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewGray(image.Rect(0, 0, tt.w, tt.h))
			out := ResizeLongest(src, tt.target)
			b := out.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantW, tt.wantH, b.Dx(), b.Dy())
			}
			if tt.noResize && out != image.Image(src) {
				t.Error("Expected small image to be returned unchanged")
			}
		})
	}
}

func TestResizeHeight_CapsWidth(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1000, 10))
	out := ResizeHeight(src, 32, 128)
	b := out.Bounds()
	if b.Dy() != 32 {
		t.Errorf("Expected height 32, got %d", b.Dy())
	}
	if b.Dx() != 128 {
		t.Errorf("Expected width capped at 128, got %d", b.Dx())
	}
}

func TestCrop(t *testing.T) {
	src := makeTestImage(20, 20, image.Rect(5, 5, 15, 15))

	out := Crop(src, image.Rect(5, 5, 15, 15))
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Errorf("Unexpected crop bounds: %v", out.Bounds())
	}

	// Out-of-bounds crop yields a non-empty placeholder.
	out = Crop(src, image.Rect(100, 100, 120, 120))
	if out.Bounds().Empty() {
		t.Error("Expected non-empty placeholder for out-of-bounds crop")
	}
}

func TestIntegral_Mean(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.SetGray(x, y, color.Gray{Y: uint8(100)})
		}
	}
	it := NewIntegral(g)

	if m := it.Mean(0, 0, 4, 4); m != 100 {
		t.Errorf("Expected mean 100, got %v", m)
	}
	// Window clipping.
	if m := it.Mean(-5, -5, 2, 2); m != 100 {
		t.Errorf("Expected clipped mean 100, got %v", m)
	}
	if m := it.Mean(4, 4, 8, 8); m != 0 {
		t.Errorf("Expected zero mean for empty window, got %v", m)
	}
}

func TestSauvolaThreshold_FindsInk(t *testing.T) {
	ink := image.Rect(10, 10, 30, 20)
	img := makeTestImage(50, 40, ink)

	bm := SauvolaThreshold(img, 15, 0.2)

	if !bm.Get(20, 15) {
		t.Error("Expected ink at center of dark region")
	}
	if bm.Get(2, 2) {
		t.Error("Expected background in white region")
	}
	if bm.Count() == 0 {
		t.Error("Expected non-empty bitmap")
	}
}

func TestOpen_RemovesSpeckles(t *testing.T) {
	bm := NewBitmap(20, 20)
	// Single-pixel speckle and a solid 6x6 block.
	bm.Set(2, 2, true)
	for y := 10; y < 16; y++ {
		for x := 10; x < 16; x++ {
			bm.Set(x, y, true)
		}
	}

	out := Open(bm, 1)

	if out.Get(2, 2) {
		t.Error("Expected speckle to be removed")
	}
	if !out.Get(12, 12) {
		t.Error("Expected solid block to survive opening")
	}
}

func TestDilate_Horizontal(t *testing.T) {
	bm := NewBitmap(20, 20)
	bm.Set(10, 10, true)

	out := Dilate(bm, 3, 0)

	if !out.Get(7, 10) || !out.Get(13, 10) {
		t.Error("Expected horizontal growth")
	}
	if out.Get(10, 9) || out.Get(10, 11) {
		t.Error("Expected no vertical growth")
	}
}

func TestComponents(t *testing.T) {
	bm := NewBitmap(30, 30)
	// Two disjoint blocks.
	for y := 2; y < 6; y++ {
		for x := 2; x < 10; x++ {
			bm.Set(x, y, true)
		}
	}
	for y := 20; y < 24; y++ {
		for x := 15; x < 25; x++ {
			bm.Set(x, y, true)
		}
	}

	rects, counts := Components(bm)
	if len(rects) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(rects))
	}

	want1 := image.Rect(2, 2, 10, 6)
	want2 := image.Rect(15, 20, 25, 24)
	if rects[0] != want1 && rects[1] != want1 {
		t.Errorf("Missing component %v in %v", want1, rects)
	}
	if rects[0] != want2 && rects[1] != want2 {
		t.Errorf("Missing component %v in %v", want2, rects)
	}
	for i, c := range counts {
		if c != rects[i].Dx()*rects[i].Dy() {
			t.Errorf("Component %d: expected count %d, got %d", i, rects[i].Dx()*rects[i].Dy(), c)
		}
	}
}

func TestComponents_Empty(t *testing.T) {
	rects, counts := Components(NewBitmap(10, 10))
	if len(rects) != 0 || len(counts) != 0 {
		t.Errorf("Expected no components, got %d", len(rects))
	}
}
