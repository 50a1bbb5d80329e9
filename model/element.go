package model

import (
	"strings"

	"github.com/tsawler/lectio/geometry"
)

// Word is a single recognized word with its bounding box in relative
// page coordinates and the recognition confidence in [0, 1].
type Word struct {
	Value      string        `json:"value"`
	Confidence float64       `json:"confidence"`
	Geometry   geometry.BBox `json:"geometry"`
}

// Line is a horizontal run of words.
type Line struct {
	Words    []Word        `json:"words"`
	Geometry geometry.BBox `json:"geometry"`
}

// NewLine creates a line from words, computing the enclosing geometry.
func NewLine(words []Word) Line {
	boxes := make([]geometry.BBox, len(words))
	for i, w := range words {
		boxes[i] = w.Geometry
	}
	return Line{Words: words, Geometry: geometry.EnclosingBBox(boxes)}
}

// Text joins the line's words with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Value
	}
	return strings.Join(parts, " ")
}

// Confidence returns the lowest word confidence, or 0 for an empty
// line. A line is only as trustworthy as its weakest word.
func (l Line) Confidence() float64 {
	return minWordConfidence(l.Words)
}

// Block is a group of lines forming a visual unit such as a paragraph
// or a column segment.
type Block struct {
	Lines    []Line        `json:"lines"`
	Geometry geometry.BBox `json:"geometry"`
}

// NewBlock creates a block from lines, computing the enclosing geometry.
func NewBlock(lines []Line) Block {
	boxes := make([]geometry.BBox, len(lines))
	for i, l := range lines {
		boxes[i] = l.Geometry
	}
	return Block{Lines: lines, Geometry: geometry.EnclosingBBox(boxes)}
}

// Text joins the block's lines with newlines.
func (b Block) Text() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}

// Words returns the block's words in reading order.
func (b Block) Words() []Word {
	var words []Word
	for _, l := range b.Lines {
		words = append(words, l.Words...)
	}
	return words
}

// Confidence returns the lowest word confidence, or 0 for an empty
// block.
func (b Block) Confidence() float64 {
	return minWordConfidence(b.Words())
}

func minWordConfidence(words []Word) float64 {
	if len(words) == 0 {
		return 0
	}
	min := words[0].Confidence
	for _, w := range words[1:] {
		if w.Confidence < min {
			min = w.Confidence
		}
	}
	return min
}
