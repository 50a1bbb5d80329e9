package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/tsawler/lectio/geometry"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func word(value string, confidence, xmin, ymin, xmax, ymax float64) Word {
	return Word{
		Value:      value,
		Confidence: confidence,
		Geometry:   geometry.BBox{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax},
	}
}

func newTestResult() *Result {
	res := NewResult()

	page := NewPage(0, 640, 480)
	page.AddBlock(NewBlock([]Line{
		NewLine([]Word{
			word("Hello", 0.9, 0.1, 0.1, 0.3, 0.15),
			word("world", 0.7, 0.35, 0.1, 0.55, 0.15),
		}),
		NewLine([]Word{
			word("second", 0.8, 0.1, 0.2, 0.4, 0.25),
		}),
	}))
	page.AddBlock(NewBlock([]Line{
		NewLine([]Word{
			word("footer", 0.6, 0.1, 0.9, 0.3, 0.95),
		}),
	}))
	res.AddPage(page)
	return res
}

func TestNewResult_HasIdentity(t *testing.T) {
	res := NewResult()
	if res.ID == "" {
		t.Error("Expected a non-empty result ID")
	}
	if res.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
	other := NewResult()
	if res.ID == other.ID {
		t.Error("Expected distinct IDs for distinct results")
	}
}

func TestLine_TextAndConfidence(t *testing.T) {
	line := NewLine([]Word{
		word("Hello", 0.9, 0.1, 0.1, 0.3, 0.15),
		word("world", 0.7, 0.35, 0.1, 0.55, 0.15),
	})

	if got := line.Text(); got != "Hello world" {
		t.Errorf("Expected 'Hello world', got %q", got)
	}
	if got := line.Confidence(); !almostEqual(got, 0.7) {
		t.Errorf("Expected confidence of the weakest word 0.7, got %v", got)
	}

	want := geometry.BBox{XMin: 0.1, YMin: 0.1, XMax: 0.55, YMax: 0.15}
	if line.Geometry != want {
		t.Errorf("Expected enclosing geometry %+v, got %+v", want, line.Geometry)
	}
}

func TestEmptyLine_Confidence(t *testing.T) {
	var line Line
	if got := line.Confidence(); got != 0 {
		t.Errorf("Expected 0 confidence for empty line, got %v", got)
	}
}

func TestBlock_Text(t *testing.T) {
	res := newTestResult()
	block := res.Pages[0].Blocks[0]

	want := "Hello world\nsecond"
	if got := block.Text(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if got := len(block.Words()); got != 3 {
		t.Errorf("Expected 3 words, got %d", got)
	}
}

func TestPage_TextJoinsBlocks(t *testing.T) {
	res := newTestResult()
	page := res.Pages[0]

	want := "Hello world\nsecond\n\nfooter"
	if got := page.Text(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if got := page.WordCount(); got != 4 {
		t.Errorf("Expected 4 words, got %d", got)
	}
}

func TestResult_TextAndConfidence(t *testing.T) {
	res := newTestResult()

	if got := res.PageCount(); got != 1 {
		t.Errorf("Expected 1 page, got %d", got)
	}
	if !strings.Contains(res.Text(), "Hello world") {
		t.Errorf("Expected document text to contain the first line, got %q", res.Text())
	}

	// The footer word is the weakest in the document.
	if got := res.Confidence(); !almostEqual(got, 0.6) {
		t.Errorf("Expected confidence 0.6, got %v", got)
	}
}

func TestConfidence_LowestWordWins(t *testing.T) {
	line := NewLine([]Word{
		word("sure", 1.0, 0.1, 0.1, 0.3, 0.15),
		word("shaky", 0.2, 0.35, 0.1, 0.55, 0.15),
	})
	if got := line.Confidence(); !almostEqual(got, 0.2) {
		t.Errorf("Expected line confidence 0.2, got %v", got)
	}

	block := NewBlock([]Line{line})
	if got := block.Confidence(); !almostEqual(got, 0.2) {
		t.Errorf("Expected block confidence 0.2, got %v", got)
	}

	page := NewPage(0, 100, 100)
	page.AddBlock(block)
	if got := page.Confidence(); !almostEqual(got, 0.2) {
		t.Errorf("Expected page confidence 0.2, got %v", got)
	}
}

func TestResult_Render(t *testing.T) {
	res := newTestResult()
	out := res.Render()

	if !strings.Contains(out, "Page 0 (640x480)") {
		t.Errorf("Expected page header in render, got %q", out)
	}
	if !strings.Contains(out, "Block 1") {
		t.Errorf("Expected second block in render, got %q", out)
	}
	if !strings.Contains(out, "Hello world") {
		t.Errorf("Expected line text in render, got %q", out)
	}
}

func TestResult_ExportJSON(t *testing.T) {
	res := newTestResult()
	data, err := res.ExportJSON()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if decoded.ID != res.ID {
		t.Errorf("Expected ID %q, got %q", res.ID, decoded.ID)
	}
	if len(decoded.Pages) != 1 || len(decoded.Pages[0].Blocks) != 2 {
		t.Errorf("Expected page structure to survive a round trip, got %+v", decoded)
	}
	if decoded.Pages[0].Blocks[0].Lines[0].Words[0].Value != "Hello" {
		t.Error("Expected word values to survive a round trip")
	}
}
