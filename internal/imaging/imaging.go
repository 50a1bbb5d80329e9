// Package imaging provides the pixel-level helpers shared by the detection
// and recognition pipelines: grayscale conversion, resizing, local
// thresholding and binary morphology.
package imaging

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Grayscale converts any image to an 8-bit grayscale image.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}

// Resize scales an image to the exact target dimensions using bilinear
// interpolation.
func Resize(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// ResizeLongest scales an image so its longest side equals target while
// preserving the aspect ratio. Images already within the target are
// returned unchanged.
func ResizeLongest(img image.Image, target int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= target || longest == 0 {
		return img
	}
	scale := float64(target) / float64(longest)
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return Resize(img, nw, nh)
}

// ResizeHeight scales an image to the given height, preserving aspect
// ratio and capping the width at maxWidth. Used to shape word crops for
// the recognition engine.
func ResizeHeight(img image.Image, height, maxWidth int) image.Image {
	b := img.Bounds()
	if b.Dy() == 0 {
		return img
	}
	scale := float64(height) / float64(b.Dy())
	w := int(math.Round(float64(b.Dx()) * scale))
	if w < 1 {
		w = 1
	}
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	return Resize(img, w, height)
}

// Crop returns a copy of the sub-image delimited by rect, clipped to the
// image bounds. An empty clip yields a 1x1 white image so downstream
// consumers never receive a zero-sized crop.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		blank := image.NewGray(image.Rect(0, 0, 1, 1))
		blank.SetGray(0, 0, color.Gray{Y: 255})
		return blank
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}

// Bitmap is a binary image where true marks an ink (foreground) pixel.
type Bitmap struct {
	Width  int
	Height int
	Pix    []bool
}

// NewBitmap allocates a cleared bitmap.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{Width: width, Height: height, Pix: make([]bool, width*height)}
}

// Get reports whether the pixel at (x, y) is ink. Out-of-range pixels are
// background.
func (b *Bitmap) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Width+x]
}

// Set marks the pixel at (x, y).
func (b *Bitmap) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = v
}

// Count returns the number of ink pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Pix {
		if v {
			n++
		}
	}
	return n
}

// Integral accumulates prefix sums over a grayscale image so that the sum
// of any axis-aligned window can be computed in constant time.
type Integral struct {
	width  int
	height int
	sum    []float64
	sumSq  []float64
}

// NewIntegral builds the integral tables for a grayscale image.
func NewIntegral(g *image.Gray) *Integral {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	it := &Integral{
		width:  w,
		height: h,
		sum:    make([]float64, (w+1)*(h+1)),
		sumSq:  make([]float64, (w+1)*(h+1)),
	}
	stride := w + 1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			idx := (y+1)*stride + (x + 1)
			it.sum[idx] = v + it.sum[idx-1] + it.sum[idx-stride] - it.sum[idx-stride-1]
			it.sumSq[idx] = v*v + it.sumSq[idx-1] + it.sumSq[idx-stride] - it.sumSq[idx-stride-1]
		}
	}
	return it
}

// window clips the window to the image and returns sum, sum of squares and
// pixel count.
func (it *Integral) window(x0, y0, x1, y1 int) (float64, float64, int) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > it.width {
		x1 = it.width
	}
	if y1 > it.height {
		y1 = it.height
	}
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0
	}
	stride := it.width + 1
	s := it.sum[y1*stride+x1] - it.sum[y0*stride+x1] - it.sum[y1*stride+x0] + it.sum[y0*stride+x0]
	sq := it.sumSq[y1*stride+x1] - it.sumSq[y0*stride+x1] - it.sumSq[y1*stride+x0] + it.sumSq[y0*stride+x0]
	return s, sq, (x1 - x0) * (y1 - y0)
}

// Mean returns the mean pixel value over the clipped window.
func (it *Integral) Mean(x0, y0, x1, y1 int) float64 {
	s, _, n := it.window(x0, y0, x1, y1)
	if n == 0 {
		return 0
	}
	return s / float64(n)
}

// SauvolaThreshold binarizes a grayscale image using Sauvola's local
// threshold: t = m * (1 + k*(s/R - 1)) computed over a square window.
// Dark pixels (below the local threshold) become ink.
func SauvolaThreshold(g *image.Gray, window int, k float64) *Bitmap {
	const r = 128.0

	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewBitmap(w, h)
	if w == 0 || h == 0 {
		return out
	}
	if window < 3 {
		window = 3
	}
	half := window / 2

	it := NewIntegral(g)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s, sq, n := it.window(x-half, y-half, x+half+1, y+half+1)
			mean := s / float64(n)
			variance := sq/float64(n) - mean*mean
			if variance < 0 {
				variance = 0
			}
			std := math.Sqrt(variance)
			threshold := mean * (1 + k*(std/r-1))
			v := float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			out.Pix[y*w+x] = v < threshold
		}
	}
	return out
}

// Erode shrinks ink regions with a square structuring element of the given
// radius.
func Erode(src *Bitmap, radius int) *Bitmap {
	if radius <= 0 {
		return src
	}
	out := NewBitmap(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if !src.Pix[y*src.Width+x] {
				continue
			}
			keep := true
			for dy := -radius; dy <= radius && keep; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if !src.Get(x+dx, y+dy) {
						keep = false
						break
					}
				}
			}
			out.Pix[y*src.Width+x] = keep
		}
	}
	return out
}

// Dilate grows ink regions with a rectangular structuring element. The
// horizontal and vertical radii are independent so word fusion can stretch
// along the text direction only.
func Dilate(src *Bitmap, radiusX, radiusY int) *Bitmap {
	if radiusX <= 0 && radiusY <= 0 {
		return src
	}
	out := NewBitmap(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if !src.Pix[y*src.Width+x] {
				continue
			}
			for dy := -radiusY; dy <= radiusY; dy++ {
				for dx := -radiusX; dx <= radiusX; dx++ {
					out.Set(x+dx, y+dy, true)
				}
			}
		}
	}
	return out
}

// Open performs a morphological opening (erosion then dilation) with a
// square structuring element, removing speckles smaller than the kernel.
func Open(src *Bitmap, radius int) *Bitmap {
	if radius <= 0 {
		return src
	}
	return Dilate(Erode(src, radius), radius, radius)
}

// Components labels 4-connected ink regions and returns their pixel-space
// bounding rectangles together with the region pixel counts.
func Components(src *Bitmap) ([]image.Rectangle, []int) {
	labels := make([]int32, len(src.Pix))
	var rects []image.Rectangle
	var counts []int

	var stack []int
	next := int32(0)
	for start, v := range src.Pix {
		if !v || labels[start] != 0 {
			continue
		}
		next++
		minX, minY := src.Width, src.Height
		maxX, maxY := -1, -1
		count := 0

		stack = append(stack[:0], start)
		labels[start] = next
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x := idx % src.Width
			y := idx / src.Width
			count++
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}

			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= src.Width || ny >= src.Height {
					continue
				}
				nidx := ny*src.Width + nx
				if src.Pix[nidx] && labels[nidx] == 0 {
					labels[nidx] = next
					stack = append(stack, nidx)
				}
			}
		}

		rects = append(rects, image.Rect(minX, minY, maxX+1, maxY+1))
		counts = append(counts, count)
	}
	return rects, counts
}
