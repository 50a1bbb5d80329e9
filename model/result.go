package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result is the recognized content of a whole document.
type Result struct {
	// ID uniquely identifies this processing run.
	ID string `json:"id"`

	// CreatedAt records when processing finished.
	CreatedAt time.Time `json:"created_at"`

	// Pages are the document pages in source order.
	Pages []*Page `json:"pages"`
}

// NewResult creates an empty result with a fresh ID.
func NewResult() *Result {
	return &Result{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// AddPage appends a page to the result.
func (r *Result) AddPage(p *Page) {
	r.Pages = append(r.Pages, p)
}

// PageCount returns the number of pages in the result.
func (r *Result) PageCount() int {
	return len(r.Pages)
}

// Text joins the page texts with page breaks.
func (r *Result) Text() string {
	parts := make([]string, len(r.Pages))
	for i, p := range r.Pages {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n\n\n")
}

// Words returns every word in the document in reading order.
func (r *Result) Words() []Word {
	var words []Word
	for _, p := range r.Pages {
		words = append(words, p.Words()...)
	}
	return words
}

// Confidence returns the lowest word confidence over the whole
// document.
func (r *Result) Confidence() float64 {
	return minWordConfidence(r.Words())
}

// Render produces an indented outline of the document structure, useful
// for inspection and debugging.
func (r *Result) Render() string {
	var sb strings.Builder
	for _, p := range r.Pages {
		fmt.Fprintf(&sb, "Page %d (%dx%d)\n", p.Index, p.Width, p.Height)
		for bi, b := range p.Blocks {
			fmt.Fprintf(&sb, "  Block %d\n", bi)
			for _, l := range b.Lines {
				fmt.Fprintf(&sb, "    %s (%.2f)\n", l.Text(), l.Confidence())
			}
		}
	}
	return sb.String()
}

// ExportJSON serializes the result as indented JSON.
func (r *Result) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
