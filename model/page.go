package model

import "strings"

// Page holds the recognized content of a single document page.
type Page struct {
	// Index is the zero-based position of the page in the source document.
	Index int `json:"index"`

	// Width and Height are the source image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Blocks are the page's content in reading order.
	Blocks []Block `json:"blocks"`
}

// NewPage creates an empty page with the given dimensions.
func NewPage(index, width, height int) *Page {
	return &Page{Index: index, Width: width, Height: height}
}

// AddBlock appends a block to the page.
func (p *Page) AddBlock(b Block) {
	p.Blocks = append(p.Blocks, b)
}

// Text joins the page's blocks with blank lines.
func (p *Page) Text() string {
	parts := make([]string, len(p.Blocks))
	for i, b := range p.Blocks {
		parts[i] = b.Text()
	}
	return strings.Join(parts, "\n\n")
}

// Words returns the page's words in reading order.
func (p *Page) Words() []Word {
	var words []Word
	for _, b := range p.Blocks {
		words = append(words, b.Words()...)
	}
	return words
}

// WordCount returns the number of words on the page.
func (p *Page) WordCount() int {
	n := 0
	for _, b := range p.Blocks {
		for _, l := range b.Lines {
			n += len(l.Words)
		}
	}
	return n
}

// Confidence returns the lowest word confidence, or 0 for an empty
// page.
func (p *Page) Confidence() float64 {
	return minWordConfidence(p.Words())
}
