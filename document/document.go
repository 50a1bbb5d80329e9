package document

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoPages is returned when a source yields no decodable pages.
var ErrNoPages = errors.New("document has no decodable pages")

// SourceKind identifies where a page was loaded from.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceImage
	SourcePDF
	SourceURL
	SourceWebpage
)

// String returns a string representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceImage:
		return "image"
	case SourcePDF:
		return "pdf"
	case SourceURL:
		return "url"
	case SourceWebpage:
		return "webpage"
	default:
		return "unknown"
	}
}

// Page is a single page of a document, decoded to an image.
type Page struct {
	// Index is the 0-based position of the page in the document.
	Index int

	// Image is the decoded page raster. It is nil only when Blank is true.
	Image image.Image

	// Width and Height are the pixel dimensions of the page.
	Width  int
	Height int

	// Source identifies where the page came from.
	Source SourceKind

	// NativeText holds the embedded text layer for PDF pages that carry
	// one. Empty for image sources and scanned PDFs.
	NativeText string

	// Blank marks a page for which no raster could be recovered
	// (e.g. a PDF page with neither a text layer nor a usable scan).
	Blank bool
}

// Bounds returns the pixel bounds of the page image.
func (p *Page) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// HasNativeText reports whether the page carries an embedded text layer.
func (p *Page) HasNativeText() bool {
	return p.NativeText != ""
}

// Warning describes a non-fatal issue encountered while loading a source.
type Warning struct {
	// Page is the 0-based page index, or -1 for document-level warnings.
	Page    int
	Message string
}

func (w Warning) String() string {
	if w.Page >= 0 {
		return fmt.Sprintf("page %d: %s", w.Page+1, w.Message)
	}
	return w.Message
}

// Document is an in-memory representation of one or more pages derived
// from a PDF, image file(s) or a web resource.
type Document struct {
	// Source describes the origin (file path or URL).
	Source string

	// Pages are the decoded pages in document order.
	Pages []*Page

	// Warnings collects non-fatal issues encountered during loading.
	Warnings []Warning
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// addPage appends a page, assigning its index.
func (d *Document) addPage(p *Page) {
	p.Index = len(d.Pages)
	d.Pages = append(d.Pages, p)
}

func (d *Document) warnf(page int, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{Page: page, Message: fmt.Sprintf(format, args...)})
}

// newImagePage builds a page from a decoded image.
func newImagePage(img image.Image, source SourceKind) *Page {
	b := img.Bounds()
	return &Page{
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
		Source: source,
	}
}
