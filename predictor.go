package lectio

import (
	"context"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/lectio/builder"
	"github.com/tsawler/lectio/detection"
	"github.com/tsawler/lectio/document"
	"github.com/tsawler/lectio/geometry"
	"github.com/tsawler/lectio/internal/imaging"
	"github.com/tsawler/lectio/metrics"
	"github.com/tsawler/lectio/model"
	"github.com/tsawler/lectio/recognition"
)

// Predictor runs the two-stage OCR pipeline: a detector localizes word
// boxes on each page and a recognizer transcribes the cropped words,
// which are then assembled into structured pages.
//
// A Predictor is safe for concurrent use.
type Predictor struct {
	det     detection.Detector
	reco    recognition.Recognizer
	bld     *builder.Builder
	log     *logrus.Logger
	met     *metrics.Metrics
	workers int
}

// OCRPredictor creates a predictor from detection and recognition
// architecture names. Empty names select the defaults.
//
// Example:
//
//	p, err := lectio.OCRPredictor("db_resnet50", "crnn_vgg16_bn")
//	res, warnings, err := p.Predict(ctx, doc)
func OCRPredictor(detArch, recoArch string, opts ...Option) (*Predictor, error) {
	cfg := defaultPredictorOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.pretrained {
		return nil, fmt.Errorf("pretrained=false is not supported: architecture profiles are engine-backed and carry no trainable parameters")
	}

	det := cfg.detector
	if det == nil {
		var err error
		det, err = detection.New(detArch)
		if err != nil {
			return nil, err
		}
	}

	reco := cfg.recognizer
	if reco == nil {
		var err error
		reco, err = recognition.New(recoArch)
		if err != nil {
			return nil, err
		}
	}
	if len(cfg.languages) > 0 {
		if er, ok := reco.(*recognition.EngineRecognizer); ok {
			er.SetLanguages(cfg.languages...)
		}
	}

	log := cfg.logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &Predictor{
		det:     det,
		reco:    reco,
		bld:     builder.New(cfg.builder),
		log:     log,
		met:     cfg.metrics,
		workers: cfg.workers,
	}, nil
}

// pageOutcome carries one processed page back from the worker pool.
type pageOutcome struct {
	slot     int
	page     *model.Page
	warnings []Warning
	err      error
}

// Predict runs the pipeline over every page of the document. Page order
// is preserved in the result regardless of worker count.
func (p *Predictor) Predict(ctx context.Context, doc *document.Document) (*model.Result, []Warning, error) {
	if doc == nil || doc.PageCount() == 0 {
		return nil, nil, document.ErrNoPages
	}

	warnings := convertWarnings(doc.Warnings)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	outcomes := make(chan pageOutcome)

	workers := p.workers
	if workers < 1 {
		workers = 1
	}
	if workers > doc.PageCount() {
		workers = doc.PageCount()
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for slot := range jobs {
				out := p.processPage(ctx, doc.Pages[slot])
				out.slot = slot
				select {
				case outcomes <- out:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range doc.Pages {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	pages := make([]*model.Page, doc.PageCount())
	var firstErr error
	for out := range outcomes {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
				cancel()
			}
			continue
		}
		pages[out.slot] = out.page
		warnings = append(warnings, out.warnings...)
	}
	if firstErr == nil {
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		return nil, warnings, firstErr
	}

	result := model.NewResult()
	for _, page := range pages {
		result.AddPage(page)
	}
	return result, warnings, nil
}

// processPage runs detection, recognition and assembly for one page.
func (p *Predictor) processPage(ctx context.Context, page *document.Page) pageOutcome {
	if page.Blank {
		return pageOutcome{
			page:     model.NewPage(page.Index, page.Width, page.Height),
			warnings: []Warning{warningf(page.Index, "no raster content, page skipped")},
		}
	}

	if page.HasNativeText() {
		p.log.WithField("page", page.Index).Debug("using embedded text layer")
		return pageOutcome{page: p.nativePage(page)}
	}

	start := time.Now()
	boxes, err := p.det.Detect(ctx, page.Image)
	if err != nil {
		return pageOutcome{err: fmt.Errorf("page %d: detection: %w", page.Index+1, err)}
	}
	p.met.ObserveDetection(time.Since(start))
	p.log.WithFields(logrus.Fields{
		"page":  page.Index,
		"boxes": len(boxes),
	}).Debug("detection complete")

	geoms := make([]geometry.BBox, len(boxes))
	crops := make([]image.Image, len(boxes))
	for i, box := range boxes {
		geoms[i] = box.BBox
		crops[i] = imaging.Crop(page.Image, box.ToAbsolute(page.Width, page.Height))
	}

	start = time.Now()
	words, err := p.reco.Recognize(ctx, crops)
	if err != nil {
		return pageOutcome{err: fmt.Errorf("page %d: recognition: %w", page.Index+1, err)}
	}
	p.met.ObserveRecognition(time.Since(start))

	built, err := p.bld.Build(page.Index, page.Width, page.Height, geoms, words)
	if err != nil {
		return pageOutcome{err: fmt.Errorf("page %d: %w", page.Index+1, err)}
	}

	p.met.PageDone(built.WordCount())

	var warnings []Warning
	if len(boxes) > 0 && built.WordCount() == 0 {
		warnings = append(warnings, warningf(page.Index, "no words recognized in %d detected regions", len(boxes)))
	}
	return pageOutcome{page: built, warnings: warnings}
}

// nativePage converts an embedded text layer into a structured page.
// Words carry full confidence and no geometry, since the layer has no
// position information.
func (p *Predictor) nativePage(page *document.Page) *model.Page {
	out := model.NewPage(page.Index, page.Width, page.Height)

	var lines []model.Line
	for _, raw := range strings.Split(page.NativeText, "\n") {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		words := make([]model.Word, len(fields))
		for i, f := range fields {
			words[i] = model.Word{Value: f, Confidence: 1}
		}
		lines = append(lines, model.NewLine(words))
	}
	if len(lines) > 0 {
		out.AddBlock(model.NewBlock(lines))
	}
	return out
}
