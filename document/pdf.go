package document

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FromPDF loads a PDF file as a multi-page document.
//
// For each page the loader captures the native text layer when present and
// recovers the page raster from the page's image XObjects; scanned PDFs
// typically embed one full-page image per page and that image becomes the
// page raster. Pages with neither a text layer nor a usable scan are kept
// as blank pages and reported through the document warnings.
func FromPDF(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	doc, err := loadPDF(r)
	if err != nil {
		return nil, err
	}
	doc.Source = path
	return doc, nil
}

// FromPDFBytes loads an in-memory PDF payload as a multi-page document.
func FromPDFBytes(data []byte) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return loadPDF(r)
}

func loadPDF(r *pdf.Reader) (*Document, error) {
	doc := &Document{}

	total := r.NumPage()
	if total == 0 {
		return nil, ErrNoPages
	}

	for num := 1; num <= total; num++ {
		p := r.Page(num)
		if p.V.IsNull() {
			doc.warnf(num-1, "page could not be read")
			doc.addPage(&Page{Source: SourcePDF, Blank: true})
			continue
		}

		page := &Page{Source: SourcePDF}

		if text, err := p.GetPlainText(nil); err == nil {
			page.NativeText = strings.TrimSpace(text)
		}

		if img, err := extractPageScan(p); err == nil && img != nil {
			b := img.Bounds()
			page.Image = img
			page.Width = b.Dx()
			page.Height = b.Dy()
		} else {
			if err != nil {
				doc.warnf(num-1, "no page scan recovered: %v", err)
			}
			page.Width, page.Height = mediaBoxSize(p)
			if !page.HasNativeText() {
				page.Blank = true
				doc.warnf(num-1, "page has neither a text layer nor a scan image")
			}
		}

		doc.addPage(page)
	}

	return doc, nil
}

// extractPageScan walks the page's image XObjects and decodes the largest
// one, on the assumption that a scanned page embeds its raster as a single
// full-page image. Returns (nil, nil) when the page has no image XObjects.
func extractPageScan(p pdf.Page) (image.Image, error) {
	xobjects := p.Resources().Key("XObject")
	if xobjects.IsNull() || xobjects.Kind() != pdf.Dict {
		return nil, nil
	}

	var best *xobjImage
	var lastErr error
	for _, name := range xobjects.Keys() {
		v := xobjects.Key(name)
		if v.Kind() != pdf.Stream {
			continue
		}
		if v.Key("Subtype").Name() != "Image" {
			continue
		}

		candidate, err := decodeImageXObject(v)
		if err != nil {
			lastErr = err
			continue
		}
		if best == nil || candidate.width*candidate.height > best.width*best.height {
			best = candidate
		}
	}

	if best == nil {
		return nil, lastErr
	}
	return best.toImage()
}

// mediaBoxSize returns the page dimensions in PDF points, used as a
// stand-in raster size for pages without a scan.
func mediaBoxSize(p pdf.Page) (int, int) {
	box := p.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return 0, 0
	}
	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return int(math.Round(w)), int(math.Round(h))
}

// decodeImageXObject reads an image XObject's properties and decoded
// stream data.
func decodeImageXObject(v pdf.Value) (*xobjImage, error) {
	width := int(v.Key("Width").Int64())
	height := int(v.Key("Height").Int64())
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image missing Width or Height")
	}

	bpc := 8
	if b := v.Key("BitsPerComponent"); !b.IsNull() {
		bpc = int(b.Int64())
	}

	data, err := streamBytes(v)
	if err != nil {
		return nil, err
	}

	return &xobjImage{
		width:      width,
		height:     height,
		bpc:        bpc,
		colorSpace: parseColorSpace(v.Key("ColorSpace")),
		data:       data,
	}, nil
}

// streamBytes decodes a stream's content. The underlying PDF library
// panics on unsupported stream filters (e.g. DCTDecode), so the panic is
// converted into an error here.
func streamBytes(v pdf.Value) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to decode image stream: %v", r)
		}
	}()
	rc := v.Reader()
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseColorSpace resolves a color space object to its family name.
func parseColorSpace(v pdf.Value) string {
	switch v.Kind() {
	case pdf.Name:
		return v.Name()
	case pdf.Array:
		if v.Len() == 0 {
			break
		}
		name := v.Index(0).Name()
		// Indexed color spaces carry their base space at index 1.
		if name == "Indexed" && v.Len() > 1 {
			return parseColorSpace(v.Index(1))
		}
		if name != "" {
			return name
		}
	}
	return "DeviceGray"
}
