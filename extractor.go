package lectio

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/tsawler/lectio/document"
	"github.com/tsawler/lectio/format"
	"github.com/tsawler/lectio/model"
	"github.com/tsawler/lectio/vis"
)

// ExtractOptions holds configuration for the fluent extraction chain.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Pipeline selection
	detArch  string
	recoArch string

	// Processing options
	languages     []string
	workers       int
	resolveBlocks bool
}

// defaultExtractOptions returns the default extraction options.
func defaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		pages:   nil, // nil means all pages
		workers: 0,   // 0 defers to the predictor default
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		detArch:       o.detArch,
		recoArch:      o.recoArch,
		workers:       o.workers,
		resolveBlocks: o.resolveBlocks,
	}
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.languages != nil {
		newOpts.languages = make([]string, len(o.languages))
		copy(newOpts.languages, o.languages)
	}
	return newOpts
}

// Extractor provides a fluent interface for running OCR over documents.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	sources []string
	doc     *document.Document

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability: each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		sources: append([]string(nil), e.sources...),
		doc:     e.doc,
		options: e.options.clone(),
		err:     e.err,
	}
}

// ensureDocument loads the source document if not already loaded.
func (e *Extractor) ensureDocument() error {
	if e.doc != nil {
		return nil
	}
	if len(e.sources) == 0 {
		return fmt.Errorf("no input specified")
	}

	first := e.sources[0]
	switch format.Detect(first) {
	case format.URL:
		doc, err := document.FromWeb(first)
		if err != nil {
			return err
		}
		e.doc = doc
		return nil

	case format.PDF:
		doc, err := document.FromPDF(first)
		if err != nil {
			return err
		}
		e.doc = doc
		return nil

	default:
		doc, err := document.FromImages(e.sources...)
		if err != nil {
			return err
		}
		e.doc = doc
		return nil
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to process (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	text, _, err := lectio.Open("scan.pdf").Pages(1, 3, 5).Text()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to process (1-indexed, inclusive).
//
// Example:
//
//	text, _, err := lectio.Open("scan.pdf").PageRange(5, 10).Text()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Detector selects the detection architecture by name.
//
// Example:
//
//	text, _, err := lectio.Open("scan.pdf").Detector("fast_base").Text()
func (e *Extractor) Detector(arch string) *Extractor {
	newExt := e.clone()
	newExt.options.detArch = arch
	return newExt
}

// Recognizer selects the recognition architecture by name.
//
// Example:
//
//	text, _, err := lectio.Open("scan.pdf").Recognizer("parseq").Text()
func (e *Extractor) Recognizer(arch string) *Extractor {
	newExt := e.clone()
	newExt.options.recoArch = arch
	return newExt
}

// Languages selects the recognition languages.
//
// Example:
//
//	text, _, err := lectio.Open("facture.pdf").Languages("fra").Text()
func (e *Extractor) Languages(langs ...string) *Extractor {
	newExt := e.clone()
	newExt.options.languages = append(newExt.options.languages, langs...)
	return newExt
}

// Workers sets how many pages are processed concurrently.
//
// Example:
//
//	text, _, err := lectio.Open("scan.pdf").Workers(4).Text()
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n > 0 {
		newExt.options.workers = n
	}
	return newExt
}

// ResolveBlocks groups lines into paragraph-like blocks by vertical
// proximity.
//
// Example:
//
//	res, _, err := lectio.Open("scan.pdf").ResolveBlocks().Result()
func (e *Extractor) ResolveBlocks() *Extractor {
	newExt := e.clone()
	newExt.options.resolveBlocks = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// Result runs the pipeline and returns the structured document content.
//
// Returns the result, any warnings encountered during processing, and an
// error if processing failed. Warnings indicate non-fatal issues (e.g. a
// page without raster content) where processing succeeded but results
// may be incomplete.
//
// Example:
//
//	res, warnings, err := lectio.Open("scan.pdf").Result()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", lectio.FormatWarnings(warnings))
//	}
func (e *Extractor) Result() (*model.Result, []Warning, error) {
	return e.ResultContext(context.Background())
}

// ResultContext is Result with a caller-supplied context for
// cancellation.
func (e *Extractor) ResultContext(ctx context.Context) (*model.Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}

	doc, err := e.selectPages()
	if err != nil {
		return nil, nil, err
	}

	predictor, err := OCRPredictor(e.options.detArch, e.options.recoArch,
		WithLanguages(e.options.languages...),
		WithWorkers(e.options.workers),
		WithResolveBlocks(e.options.resolveBlocks),
	)
	if err != nil {
		return nil, nil, err
	}

	return predictor.Predict(ctx, doc)
}

// Text runs the pipeline and returns the recognized text.
//
// Example:
//
//	text, warnings, err := lectio.Open("scan.pdf").Text()
func (e *Extractor) Text() (string, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return "", warnings, err
	}
	return res.Text(), warnings, nil
}

// Annotate runs the pipeline and writes one annotated PNG per page into
// dir, outlining each recognized word colored by confidence. Files are
// named page_001.png, page_002.png and so on.
//
// Example:
//
//	warnings, err := lectio.Open("scan.pdf").Annotate("out/")
func (e *Extractor) Annotate(dir string) ([]Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return warnings, err
	}

	byIndex := make(map[int]*model.Page, len(res.Pages))
	for _, p := range res.Pages {
		byIndex[p.Index] = p
	}

	for _, page := range e.doc.Pages {
		built, ok := byIndex[page.Index]
		if !ok || page.Image == nil {
			continue
		}

		annotated := vis.DrawResult(page.Image, built)
		path := filepath.Join(dir, fmt.Sprintf("page_%03d.png", page.Index+1))
		if err := vis.SavePNG(path, annotated); err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

// PageCount returns the number of pages in the source document without
// running the pipeline.
//
// Example:
//
//	count, err := lectio.Open("scan.pdf").PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return 0, err
	}
	return e.doc.PageCount(), nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// selectPages returns the document restricted to the requested pages.
// Page numbers are 1-indexed in the API, validated and deduplicated.
func (e *Extractor) selectPages() (*document.Document, error) {
	if len(e.options.pages) == 0 {
		return e.doc, nil
	}

	pageCount := e.doc.PageCount()
	seen := make(map[int]bool)
	var indices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p-1] {
			seen[p-1] = true
			indices = append(indices, p-1)
		}
	}
	sort.Ints(indices)

	subset := &document.Document{
		Source:   e.doc.Source,
		Warnings: e.doc.Warnings,
	}
	for _, idx := range indices {
		subset.Pages = append(subset.Pages, e.doc.Pages[idx])
	}
	return subset, nil
}
