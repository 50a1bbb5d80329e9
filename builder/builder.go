// Package builder assembles raw detection and recognition output into
// structured pages.
//
// The Builder pairs word boxes with their transcriptions, orders them
// into reading order, clusters them into lines and optionally groups the
// lines into blocks. All geometry is in relative page coordinates.
package builder

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/lectio/geometry"
	"github.com/tsawler/lectio/model"
	"github.com/tsawler/lectio/recognition"
)

// DefaultParagraphBreak is the relative horizontal gap above which words
// on the same row are split into separate lines.
const DefaultParagraphBreak = 0.035

// Config controls how pages are assembled.
type Config struct {
	// ResolveLines clusters words into lines by vertical proximity. When
	// false, each page yields a single line holding all words in reading
	// order.
	ResolveLines bool

	// ResolveBlocks groups lines into blocks by vertical proximity. When
	// false, each page yields a single block.
	ResolveBlocks bool

	// ParagraphBreak is the relative gap used to split lines horizontally
	// and blocks vertically.
	ParagraphBreak float64
}

// DefaultConfig returns the baseline builder configuration.
func DefaultConfig() Config {
	return Config{
		ResolveLines:   true,
		ResolveBlocks:  false,
		ParagraphBreak: DefaultParagraphBreak,
	}
}

// Builder assembles pages from detection boxes and recognized words.
type Builder struct {
	cfg Config
}

// New creates a builder with the given configuration.
func New(cfg Config) *Builder {
	if cfg.ParagraphBreak <= 0 {
		cfg.ParagraphBreak = DefaultParagraphBreak
	}
	return &Builder{cfg: cfg}
}

// Build pairs boxes with their transcriptions and assembles a page. The
// two slices must have equal length; words with an empty value are
// dropped along with their boxes.
func (b *Builder) Build(index, width, height int, boxes []geometry.BBox, words []recognition.Word) (*model.Page, error) {
	if len(boxes) != len(words) {
		return nil, fmt.Errorf("box/word count mismatch: %d boxes, %d words", len(boxes), len(words))
	}

	page := model.NewPage(index, width, height)

	var kept []model.Word
	for i, w := range words {
		if w.Value == "" {
			continue
		}
		kept = append(kept, model.Word{
			Value:      w.Value,
			Confidence: w.Confidence,
			Geometry:   boxes[i],
		})
	}
	if len(kept) == 0 {
		return page, nil
	}

	var lines [][]int
	if b.cfg.ResolveLines {
		lines = b.resolveLines(kept)
	} else {
		lines = [][]int{sortWords(kept)}
	}

	var blocks [][]model.Line
	built := make([]model.Line, len(lines))
	for i, idxs := range lines {
		built[i] = model.NewLine(pick(kept, idxs))
	}
	if b.cfg.ResolveBlocks && len(built) > 1 {
		blocks = b.resolveBlocks(built)
	} else {
		blocks = [][]model.Line{built}
	}

	for _, lines := range blocks {
		page.AddBlock(model.NewBlock(lines))
	}
	return page, nil
}

// sortWords returns word indices in reading order. The key biases the
// x position by the y position scaled to the median word height, so a
// word lower on the page sorts after one higher up even when it starts
// further left.
func sortWords(words []model.Word) []int {
	med := medianHeight(words)
	if med <= 0 {
		med = 1
	}
	idxs := make([]int, len(words))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, c int) bool {
		ka := words[idxs[a]].Geometry.XMin + 2*words[idxs[a]].Geometry.YMax/med
		kc := words[idxs[c]].Geometry.XMin + 2*words[idxs[c]].Geometry.YMax/med
		return ka < kc
	})
	return idxs
}

// resolveLines clusters words into lines: words whose vertical center
// stays within half the median word height of the running line center
// share a line, and each line is split horizontally at gaps wider than
// the paragraph break.
func (b *Builder) resolveLines(words []model.Word) [][]int {
	idxs := sortWords(words)
	med := medianHeight(words)

	var lines [][]int
	current := []int{idxs[0]}
	centerSum := yCenter(words[idxs[0]].Geometry)

	for _, idx := range idxs[1:] {
		center := yCenter(words[idx].Geometry)
		if math.Abs(center-centerSum/float64(len(current))) < med/2 {
			current = append(current, idx)
			centerSum += center
			continue
		}
		lines = append(lines, b.resolveSubLines(words, current)...)
		current = []int{idx}
		centerSum = center
	}
	lines = append(lines, b.resolveSubLines(words, current)...)
	return lines
}

// resolveSubLines splits a row of words at horizontal gaps wider than
// the paragraph break.
func (b *Builder) resolveSubLines(words []model.Word, idxs []int) [][]int {
	sort.SliceStable(idxs, func(a, c int) bool {
		return words[idxs[a]].Geometry.XMin < words[idxs[c]].Geometry.XMin
	})

	var lines [][]int
	current := []int{idxs[0]}
	for _, idx := range idxs[1:] {
		prev := words[current[len(current)-1]].Geometry
		if words[idx].Geometry.XMin-prev.XMax >= b.cfg.ParagraphBreak {
			lines = append(lines, current)
			current = nil
		}
		current = append(current, idx)
	}
	return append(lines, current)
}

// resolveBlocks groups lines into blocks, starting a new block at
// vertical gaps wider than the paragraph break.
func (b *Builder) resolveBlocks(lines []model.Line) [][]model.Line {
	sort.SliceStable(lines, func(a, c int) bool {
		if lines[a].Geometry.YMin != lines[c].Geometry.YMin {
			return lines[a].Geometry.YMin < lines[c].Geometry.YMin
		}
		return lines[a].Geometry.XMin < lines[c].Geometry.XMin
	})

	var blocks [][]model.Line
	current := []model.Line{lines[0]}
	for _, line := range lines[1:] {
		prev := current[len(current)-1].Geometry
		if line.Geometry.YMin-prev.YMax >= b.cfg.ParagraphBreak {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, line)
	}
	return append(blocks, current)
}

func pick(words []model.Word, idxs []int) []model.Word {
	out := make([]model.Word, len(idxs))
	for i, idx := range idxs {
		out[i] = words[idx]
	}
	return out
}

func yCenter(b geometry.BBox) float64 {
	return (b.YMin + b.YMax) / 2
}

func medianHeight(words []model.Word) float64 {
	heights := make([]float64, len(words))
	for i, w := range words {
		heights[i] = w.Geometry.YMax - w.Geometry.YMin
	}
	sort.Float64s(heights)
	return heights[len(heights)/2]
}
