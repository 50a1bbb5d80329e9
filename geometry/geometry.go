// Package geometry provides the coordinate primitives shared by text
// detection output and the structured OCR result model.
//
// All coordinates are relative: a BBox expresses its corners as fractions
// of the page dimensions, so boxes survive page rescaling unchanged. Use
// FromAbsolute and ToAbsolute to move between pixel space and relative
// space.
package geometry

import (
	"image"
	"math"
)

// Point represents a 2D point in relative coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents an axis-aligned bounding box in relative coordinates.
// XMin/YMin is the top-left corner, XMax/YMax the bottom-right corner,
// with Y growing downward (image coordinate system).
type BBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// NewBBox creates a bounding box from two corners. The corners are
// normalized so that min <= max on both axes.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{
		XMin: math.Min(x0, x1),
		YMin: math.Min(y0, y1),
		XMax: math.Max(x0, x1),
		YMax: math.Max(y0, y1),
	}
}

// FromAbsolute converts a pixel-space rectangle to a relative bounding box
// for a page of the given pixel dimensions.
func FromAbsolute(r image.Rectangle, pageWidth, pageHeight int) BBox {
	if pageWidth <= 0 || pageHeight <= 0 {
		return BBox{}
	}
	w := float64(pageWidth)
	h := float64(pageHeight)
	return NewBBox(
		float64(r.Min.X)/w,
		float64(r.Min.Y)/h,
		float64(r.Max.X)/w,
		float64(r.Max.Y)/h,
	).Clamp()
}

// ToAbsolute converts the relative box back to a pixel-space rectangle for
// a page of the given pixel dimensions.
func (b BBox) ToAbsolute(pageWidth, pageHeight int) image.Rectangle {
	w := float64(pageWidth)
	h := float64(pageHeight)
	return image.Rect(
		int(math.Round(b.XMin*w)),
		int(math.Round(b.YMin*h)),
		int(math.Round(b.XMax*w)),
		int(math.Round(b.YMax*h)),
	)
}

// Width returns the relative width of the box.
func (b BBox) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the relative height of the box.
func (b BBox) Height() float64 {
	return b.YMax - b.YMin
}

// Area returns the relative area of the box.
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the center point of the box.
func (b BBox) Center() Point {
	return Point{
		X: (b.XMin + b.XMax) / 2,
		Y: (b.YMin + b.YMax) / 2,
	}
}

// Contains checks if a point is inside the bounding box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.XMin && p.X <= b.XMax &&
		p.Y >= b.YMin && p.Y <= b.YMax
}

// Intersects checks if two bounding boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return !(b.XMax < other.XMin ||
		b.XMin > other.XMax ||
		b.YMax < other.YMin ||
		b.YMin > other.YMax)
}

// Intersection returns the intersection of two bounding boxes, or the zero
// box when they do not overlap.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}
	return BBox{
		XMin: math.Max(b.XMin, other.XMin),
		YMin: math.Max(b.YMin, other.YMin),
		XMax: math.Min(b.XMax, other.XMax),
		YMax: math.Min(b.YMax, other.YMax),
	}
}

// Union returns the smallest box enclosing both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		XMin: math.Min(b.XMin, other.XMin),
		YMin: math.Min(b.YMin, other.YMin),
		XMax: math.Max(b.XMax, other.XMax),
		YMax: math.Max(b.YMax, other.YMax),
	}
}

// IoU returns the intersection-over-union ratio with another box.
// Returns a value between 0 and 1.
func (b BBox) IoU(other BBox) float64 {
	if !b.Intersects(other) {
		return 0
	}
	inter := b.Intersection(other).Area()
	union := b.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Expand grows the bounding box by a relative margin on all sides.
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		XMin: b.XMin - margin,
		YMin: b.YMin - margin,
		XMax: b.XMax + margin,
		YMax: b.YMax + margin,
	}
}

// Clamp restricts every coordinate to the [0, 1] range.
func (b BBox) Clamp() BBox {
	return BBox{
		XMin: clamp01(b.XMin),
		YMin: clamp01(b.YMin),
		XMax: clamp01(b.XMax),
		YMax: clamp01(b.YMax),
	}
}

// IsEmpty returns true if the bounding box has zero or negative area.
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Polygon returns the four corners of the box in clockwise order starting
// from the top-left.
func (b BBox) Polygon() []Point {
	return []Point{
		{b.XMin, b.YMin},
		{b.XMax, b.YMin},
		{b.XMax, b.YMax},
		{b.XMin, b.YMax},
	}
}

// PolygonBBox returns the smallest axis-aligned box enclosing the polygon.
func PolygonBBox(points []Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	b := BBox{XMin: points[0].X, YMin: points[0].Y, XMax: points[0].X, YMax: points[0].Y}
	for _, p := range points[1:] {
		b.XMin = math.Min(b.XMin, p.X)
		b.YMin = math.Min(b.YMin, p.Y)
		b.XMax = math.Max(b.XMax, p.X)
		b.YMax = math.Max(b.YMax, p.Y)
	}
	return b
}

// EnclosingBBox returns the smallest box enclosing all of the given boxes.
func EnclosingBBox(boxes []BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
