package document

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// httpClient is used for all remote fetches.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// FromURL fetches a single image over HTTP(S) and loads it as a one-page
// document.
func FromURL(rawURL string) (*Document, error) {
	resp, err := httpClient.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", rawURL, err)
	}

	doc := &Document{Source: rawURL}
	doc.addPage(newImagePage(img, SourceURL))
	return doc, nil
}

// FromWeb fetches a URL and loads it as a document, dispatching on what
// comes back: an HTML response is treated as a webpage whose referenced
// images become pages, anything else is decoded as a single image.
func FromWeb(rawURL string) (*Document, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", rawURL, err)
	}

	resp, err := httpClient.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if isHTML(contentType, data) {
		return parseWebpage(rawURL, base, data, contentType)
	}

	img, err := decodeSniffed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}
	doc := &Document{Source: rawURL}
	doc.addPage(newImagePage(img, SourceURL))
	return doc, nil
}

// isHTML reports whether a response looks like an HTML page, going by
// the Content-Type header first and the body prefix as a fallback.
func isHTML(contentType string, data []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 64 {
		head = head[:64]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// FromWebpage fetches an HTML page and loads every referenced <img> as a
// page, in document order. Images that cannot be fetched or decoded are
// skipped with a warning; a page with no usable images is an error.
func FromWebpage(rawURL string) (*Document, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", rawURL, err)
	}

	resp, err := httpClient.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}
	return parseWebpage(rawURL, base, data, resp.Header.Get("Content-Type"))
}

// parseWebpage extracts the <img> references from fetched HTML and loads
// each one as a page.
func parseWebpage(rawURL string, base *url.URL, data []byte, contentType string) (*Document, error) {
	// Decode the body to UTF-8 before parsing; pages declare their
	// encoding in the Content-Type header or a meta tag.
	body, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}

	page, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rawURL, err)
	}

	doc := &Document{Source: rawURL}

	page.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			return
		}
		imgURL, err := resolveImageURL(base, src)
		if err != nil {
			doc.warnf(-1, "skipping image %q: %v", src, err)
			return
		}
		img, err := fetchImage(imgURL)
		if err != nil {
			doc.warnf(-1, "skipping image %q: %v", src, err)
			return
		}
		doc.addPage(newImagePage(img, SourceWebpage))
	})

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrNoPages)
	}
	return doc, nil
}

func resolveImageURL(base *url.URL, src string) (string, error) {
	ref, err := url.Parse(src)
	if err != nil {
		return "", err
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", resolved.Scheme)
	}
	return resolved.String(), nil
}

func fetchImage(imgURL string) (image.Image, error) {
	resp, err := httpClient.Get(imgURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, err
	}
	return img, nil
}
