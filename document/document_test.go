package document

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestPNG writes a small solid-color PNG to dir and returns its path.
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("Failed to write test PNG: %v", err)
	}
	return path
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestFromImage(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "page.png", 40, 30)

	doc, err := FromImage(path)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	if doc.PageCount() != 1 {
		t.Fatalf("Expected 1 page, got %d", doc.PageCount())
	}

	page := doc.Pages[0]
	if page.Width != 40 || page.Height != 30 {
		t.Errorf("Expected 40x30, got %dx%d", page.Width, page.Height)
	}
	if page.Source != SourceImage {
		t.Errorf("Expected source %v, got %v", SourceImage, page.Source)
	}
	if page.Index != 0 {
		t.Errorf("Expected index 0, got %d", page.Index)
	}
}

func TestFromImages_MultiplePages(t *testing.T) {
	dir := t.TempDir()
	p1 := writeTestPNG(t, dir, "a.png", 10, 10)
	p2 := writeTestPNG(t, dir, "b.png", 20, 20)

	doc, err := FromImages(p1, p2)
	if err != nil {
		t.Fatalf("FromImages failed: %v", err)
	}

	if doc.PageCount() != 2 {
		t.Fatalf("Expected 2 pages, got %d", doc.PageCount())
	}
	if doc.Pages[0].Width != 10 || doc.Pages[1].Width != 20 {
		t.Error("Pages not in argument order")
	}
	for i, page := range doc.Pages {
		if page.Index != i {
			t.Errorf("Page %d has index %d", i, page.Index)
		}
	}
}

func TestFromImages_NoPaths(t *testing.T) {
	_, err := FromImages()
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("Expected ErrNoPages, got %v", err)
	}
}

func TestFromImage_MissingFile(t *testing.T) {
	_, err := FromImage(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFromBytes(t *testing.T) {
	data := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 8, 8)))

	doc, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("Expected 1 page, got %d", doc.PageCount())
	}
}

func TestFromBytes_InvalidData(t *testing.T) {
	_, err := FromBytes([]byte("not an image"))
	if err == nil {
		t.Error("Expected error for invalid image data")
	}
}

func TestFromBytes_NamesSniffedFormat(t *testing.T) {
	// Valid PNG magic followed by garbage: sniffable but not decodable.
	_, err := FromBytes([]byte("\x89PNG\r\n\x1a\njunk"))
	if err == nil {
		t.Fatal("Expected error for truncated PNG")
	}
	if !strings.Contains(err.Error(), "PNG") {
		t.Errorf("Expected error to name the sniffed format, got %v", err)
	}
}

func TestFromURL(t *testing.T) {
	data := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 16, 16)))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer ts.Close()

	doc, err := FromURL(ts.URL + "/img.png")
	if err != nil {
		t.Fatalf("FromURL failed: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Fatalf("Expected 1 page, got %d", doc.PageCount())
	}
	if doc.Pages[0].Source != SourceURL {
		t.Errorf("Expected source %v, got %v", SourceURL, doc.Pages[0].Source)
	}
}

func TestFromURL_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := FromURL(ts.URL + "/missing.png")
	if err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestFromWebpage(t *testing.T) {
	data := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 12, 12)))

	mux := http.NewServeMux()
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body>
			<img src="/a.png">
			<img src="b.png">
			<img src="">
			<img src="/broken.png">
		</body></html>`))
	})
	mux.HandleFunc("/a.png", func(w http.ResponseWriter, r *http.Request) { w.Write(data) })
	mux.HandleFunc("/b.png", func(w http.ResponseWriter, r *http.Request) { w.Write(data) })
	mux.HandleFunc("/broken.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("junk"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	doc, err := FromWebpage(ts.URL + "/article")
	if err != nil {
		t.Fatalf("FromWebpage failed: %v", err)
	}

	if doc.PageCount() != 2 {
		t.Errorf("Expected 2 pages, got %d", doc.PageCount())
	}
	// The broken image should surface as a warning, not an error.
	if len(doc.Warnings) == 0 {
		t.Error("Expected a warning for the undecodable image")
	}
	for _, page := range doc.Pages {
		if page.Source != SourceWebpage {
			t.Errorf("Expected source %v, got %v", SourceWebpage, page.Source)
		}
	}
}

func TestFromWeb_DispatchesOnResponse(t *testing.T) {
	data := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 10, 10)))

	mux := http.NewServeMux()
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><img src="/scan.png"></body></html>`))
	})
	mux.HandleFunc("/scan.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	// An HTML response loads the page's images.
	doc, err := FromWeb(ts.URL + "/article")
	if err != nil {
		t.Fatalf("FromWeb failed on HTML: %v", err)
	}
	if doc.PageCount() != 1 || doc.Pages[0].Source != SourceWebpage {
		t.Errorf("Expected 1 webpage-sourced page, got %d (%v)", doc.PageCount(), doc.Pages[0].Source)
	}

	// An image response loads directly.
	doc, err = FromWeb(ts.URL + "/scan.png")
	if err != nil {
		t.Fatalf("FromWeb failed on image: %v", err)
	}
	if doc.PageCount() != 1 || doc.Pages[0].Source != SourceURL {
		t.Errorf("Expected 1 URL-sourced page, got %d (%v)", doc.PageCount(), doc.Pages[0].Source)
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        []byte
		want        bool
	}{
		{"header", "text/html; charset=utf-8", nil, true},
		{"doctype sniff", "application/octet-stream", []byte("  <!DOCTYPE html><html>"), true},
		{"html tag sniff", "", []byte("<HTML><body>"), true},
		{"png", "image/png", []byte("\x89PNG\r\n\x1a\n"), false},
		{"plain text", "text/plain", []byte("hello"), false},
	}
	for _, tt := range tests {
		if got := isHTML(tt.contentType, tt.data); got != tt.want {
			t.Errorf("%s: isHTML = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFromWebpage_NoImages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>text only</p></body></html>"))
	}))
	defer ts.Close()

	_, err := FromWebpage(ts.URL)
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("Expected ErrNoPages, got %v", err)
	}
}

func TestFromPDF_MissingFile(t *testing.T) {
	_, err := FromPDF(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Page: 2, Message: "no scan"}
	if w.String() != "page 3: no scan" {
		t.Errorf("Unexpected warning string: %q", w.String())
	}

	w = Warning{Page: -1, Message: "document-level"}
	if w.String() != "document-level" {
		t.Errorf("Unexpected warning string: %q", w.String())
	}
}

func TestSourceKindString(t *testing.T) {
	tests := []struct {
		kind SourceKind
		want string
	}{
		{SourceImage, "image"},
		{SourcePDF, "pdf"},
		{SourceURL, "url"},
		{SourceWebpage, "webpage"},
		{SourceUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("SourceKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
