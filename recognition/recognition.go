package recognition

import (
	"context"
	"fmt"
	"image"
	"sort"
)

// DefaultArchitecture is used when no recognition architecture is named.
const DefaultArchitecture = "crnn_vgg16_bn"

// Word is a transcribed word crop with its recognition confidence in
// [0, 1].
type Word struct {
	Value      string
	Confidence float64
}

// Recognizer transcribes word crops. Implementations return exactly one
// Word per input crop, preserving order; crops the engine cannot read
// yield an empty Value.
type Recognizer interface {
	Recognize(ctx context.Context, crops []image.Image) ([]Word, error)
}

// Config holds the recognizer parameters. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// InputHeight is the height word crops are scaled to before they are
	// handed to the engine.
	InputHeight int

	// MaxWidth caps the scaled crop width in pixels.
	MaxWidth int

	// Vocab names the character set recognition is restricted to. It must
	// be a key of Vocabs or empty for no restriction.
	Vocab string

	// DPI is declared to the engine for each crop so small inputs are not
	// rejected as low resolution.
	DPI int
}

// DefaultConfig returns the baseline recognizer configuration.
func DefaultConfig() Config {
	return Config{
		InputHeight: 32,
		MaxWidth:    128,
		Vocab:       "french",
		DPI:         96,
	}
}

// archProfiles maps architecture names to recognizer profiles. The
// profiles differ in crop shaping and vocabulary.
var archProfiles = map[string]func() Config{
	"crnn_vgg16_bn": DefaultConfig,
	"crnn_mobilenet_v3_small": func() Config {
		cfg := DefaultConfig()
		cfg.MaxWidth = 100
		return cfg
	},
	"sar_resnet31": func() Config {
		cfg := DefaultConfig()
		cfg.InputHeight = 48
		return cfg
	},
	"master": func() Config {
		cfg := DefaultConfig()
		cfg.InputHeight = 48
		cfg.MaxWidth = 160
		return cfg
	},
	"vitstr_small": func() Config {
		cfg := DefaultConfig()
		cfg.MaxWidth = 32 * 4
		return cfg
	},
	"parseq": func() Config {
		cfg := DefaultConfig()
		cfg.Vocab = "english"
		return cfg
	},
}

// Architectures returns the supported architecture names in sorted order.
func Architectures() []string {
	names := make([]string, 0, len(archProfiles))
	for name := range archProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a recognizer for the named architecture.
func New(arch string) (Recognizer, error) {
	if arch == "" {
		arch = DefaultArchitecture
	}
	profile, ok := archProfiles[arch]
	if !ok {
		return nil, fmt.Errorf("unknown recognition architecture %q", arch)
	}
	return NewEngineRecognizer(profile()), nil
}
