package document

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	// Register decoders for the formats a document loader is expected to
	// handle. GIF, JPEG and PNG come from the standard library; the rest
	// from golang.org/x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/lectio/format"
)

// FromImage loads a single image file as a one-page document.
func FromImage(path string) (*Document, error) {
	return FromImages(path)
}

// FromImages loads multiple image files as a multi-page document, one page
// per file, in argument order.
func FromImages(paths ...string) (*Document, error) {
	if len(paths) == 0 {
		return nil, ErrNoPages
	}

	doc := &Document{Source: paths[0]}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		img, err := decodeSniffed(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		doc.addPage(newImagePage(img, SourceImage))
	}
	return doc, nil
}

// decodeSniffed decodes image bytes; on failure the error names the
// format sniffed from the magic bytes so callers learn what they fed in.
func decodeSniffed(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if f := format.DetectFromMagic(data); f != format.Unknown {
			return nil, fmt.Errorf("failed to decode %s data: %w", f, err)
		}
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// FromBytes decodes an in-memory payload as a document. PDF data is
// detected by its magic bytes and routed to the PDF loader; anything
// else is treated as a single-page image.
func FromBytes(data []byte) (*Document, error) {
	if format.DetectFromMagic(data) == format.PDF {
		return FromPDFBytes(data)
	}
	img, err := decodeSniffed(data)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	doc.addPage(newImagePage(img, SourceImage))
	return doc, nil
}

// FromReader reads a stream into memory and decodes it like FromBytes.
func FromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return FromBytes(data)
}
