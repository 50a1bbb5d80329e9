package recognition

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/lectio/internal/imaging"
	"github.com/tsawler/lectio/ocr"
)

// EngineRecognizer transcribes word crops with the OCR engine in
// single-line mode. It requires the ocr build tag; without it every call
// reports ocr.ErrOCRNotEnabled.
type EngineRecognizer struct {
	cfg   Config
	langs []string
}

// NewEngineRecognizer creates a recognizer with the given configuration.
func NewEngineRecognizer(cfg Config) *EngineRecognizer {
	return &EngineRecognizer{cfg: cfg}
}

// SetLanguages selects the engine languages used for transcription. The
// engine default is English.
func (r *EngineRecognizer) SetLanguages(langs ...string) {
	r.langs = langs
}

// Recognize implements the Recognizer interface. The result always has
// one entry per crop, in input order.
func (r *EngineRecognizer) Recognize(ctx context.Context, crops []image.Image) ([]Word, error) {
	if len(crops) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if len(r.langs) > 0 {
		if err := client.SetLanguage(r.langs...); err != nil {
			return nil, fmt.Errorf("setting languages: %w", err)
		}
	}
	if vocab, ok := Vocabs[r.cfg.Vocab]; ok {
		if err := client.SetWhitelist(vocab); err != nil {
			return nil, fmt.Errorf("setting vocabulary: %w", err)
		}
	}
	if r.cfg.DPI > 0 {
		if err := client.SetDPI(r.cfg.DPI); err != nil {
			return nil, fmt.Errorf("setting resolution: %w", err)
		}
	}

	words := make([]Word, len(crops))
	var buf bytes.Buffer
	for i, crop := range crops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		shaped := imaging.ResizeHeight(crop, r.cfg.InputHeight, r.cfg.MaxWidth)
		buf.Reset()
		if err := png.Encode(&buf, shaped); err != nil {
			return nil, fmt.Errorf("encoding crop %d: %w", i, err)
		}

		text, confidence, err := client.RecognizeLine(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("recognizing crop %d: %w", i, err)
		}

		words[i] = Word{
			Value:      r.clean(text),
			Confidence: confidence,
		}
	}
	return words, nil
}

// clean normalizes engine output and drops characters outside the active
// vocabulary.
func (r *EngineRecognizer) clean(text string) string {
	text = norm.NFKC.String(text)
	text = filterVocab(text, Vocabs[r.cfg.Vocab])
	return strings.TrimSpace(text)
}
