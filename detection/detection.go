package detection

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/tsawler/lectio/geometry"
)

// DefaultArchitecture is used when no detection architecture is named.
const DefaultArchitecture = "db_resnet50"

// Box is a detected text region in relative page coordinates with its
// objectness score.
type Box struct {
	geometry.BBox
	Confidence float64
}

// Detector localizes text regions on a page image. Implementations must
// be safe for concurrent use.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Box, error)
}

// Config holds the ink-map detector parameters. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// TargetSize is the length the longest page side is scaled to before
	// analysis.
	TargetSize int

	// Window is the local-threshold window size in pixels.
	Window int

	// K is the Sauvola sensitivity parameter.
	K float64

	// BoxThresh is the minimum mean ink density for a candidate box.
	BoxThresh float64

	// MinSizeBox is the minimum box side length in pixels.
	MinSizeBox int

	// MaxCandidates caps the number of boxes returned for a page.
	MaxCandidates int

	// WordFuse scales the horizontal dilation radius used to fuse
	// characters into words, as a fraction of the median glyph height.
	WordFuse float64

	// PadRatio expands final boxes by this fraction of their height on
	// every side, recovering the glyph extent lost to thresholding.
	PadRatio float64
}

// DefaultConfig returns the baseline ink-map detector configuration.
func DefaultConfig() Config {
	return Config{
		TargetSize:    1024,
		Window:        31,
		K:             0.2,
		BoxThresh:     0.1,
		MinSizeBox:    5,
		MaxCandidates: 100,
		WordFuse:      0.6,
		PadRatio:      0.1,
	}
}

// archProfiles maps architecture names to detector profiles. The profiles
// differ in how aggressively characters are fused into words and how much
// the final boxes are expanded.
var archProfiles = map[string]func() Config{
	"db_resnet50": DefaultConfig,
	"db_mobilenet_v3_large": func() Config {
		cfg := DefaultConfig()
		cfg.TargetSize = 768
		return cfg
	},
	"linknet_resnet18": func() Config {
		cfg := DefaultConfig()
		cfg.WordFuse = 0.5
		cfg.PadRatio = 0.05
		return cfg
	},
	"fast_base": func() Config {
		cfg := DefaultConfig()
		cfg.WordFuse = 0.8
		cfg.PadRatio = 0.15
		return cfg
	},
}

// Architectures returns the supported architecture names in sorted order.
func Architectures() []string {
	names := make([]string, 0, len(archProfiles)+1)
	for name := range archProfiles {
		names = append(names, name)
	}
	names = append(names, "tesseract")
	sort.Strings(names)
	return names
}

// New returns a detector for the named architecture.
func New(arch string) (Detector, error) {
	if arch == "" {
		arch = DefaultArchitecture
	}
	if arch == "tesseract" {
		return NewEngineDetector(), nil
	}
	profile, ok := archProfiles[arch]
	if !ok {
		return nil, fmt.Errorf("unknown detection architecture %q", arch)
	}
	return NewInkDetector(profile()), nil
}

// sortByConfidence orders boxes by descending confidence, breaking ties
// by position.
func sortByConfidence(boxes []Box) {
	sort.SliceStable(boxes, func(i, j int) bool {
		if boxes[i].Confidence != boxes[j].Confidence {
			return boxes[i].Confidence > boxes[j].Confidence
		}
		if boxes[i].YMin != boxes[j].YMin {
			return boxes[i].YMin < boxes[j].YMin
		}
		return boxes[i].XMin < boxes[j].XMin
	})
}
