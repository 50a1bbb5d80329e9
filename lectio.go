// Package lectio provides a fluent API for running OCR over PDFs,
// images, and web pages.
//
// Basic usage:
//
//	text, warnings, err := lectio.Open("scan.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", lectio.FormatWarnings(warnings))
//	}
//
// With options:
//
//	res, _, err := lectio.Open("scan.pdf").
//	    Pages(1, 2, 3).
//	    Detector("db_resnet50").
//	    Recognizer("crnn_vgg16_bn").
//	    Result()
//
// For advanced use cases, the lower-level document, detection,
// recognition and builder packages are also available, and OCRPredictor
// exposes the pipeline directly.
package lectio

import (
	"github.com/tsawler/lectio/document"
)

// Open prepares a source for OCR and returns an Extractor for fluent
// configuration. The source may be a PDF file, an image file, or an
// http(s) URL pointing at an image or web page.
//
// Example:
//
//	text, warnings, err := lectio.Open("scan.pdf").Text()
func Open(source string) *Extractor {
	return &Extractor{
		sources: []string{source},
		options: defaultExtractOptions(),
	}
}

// OpenImages prepares a multi-page document from one image file per
// page, in the given order.
//
// Example:
//
//	text, warnings, err := lectio.OpenImages("p1.png", "p2.png").Text()
func OpenImages(paths ...string) *Extractor {
	return &Extractor{
		sources: paths,
		options: defaultExtractOptions(),
	}
}

// FromDocument creates an Extractor from an already-loaded document.
// This is useful when the same document is processed more than once or
// was loaded from memory.
//
// Example:
//
//	doc, err := document.FromPDFBytes(data)
//	if err != nil {
//	    // handle error
//	}
//	text, warnings, err := lectio.FromDocument(doc).Text()
func FromDocument(doc *document.Document) *Extractor {
	return &Extractor{
		doc:     doc,
		options: defaultExtractOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := lectio.Must(lectio.Open("scan.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or Result() and
// panics if the error is non-nil. It discards warnings and returns just
// the value. It is intended for use in scripts or tests where error
// handling would be cumbersome.
//
// Example:
//
//	text := lectio.MustText(lectio.Open("scan.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
