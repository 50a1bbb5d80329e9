package lectio

import (
	"fmt"
	"strings"

	"github.com/tsawler/lectio/document"
)

// Warning describes a non-fatal issue encountered while processing a
// document. Processing succeeded but the results may be incomplete.
type Warning struct {
	// Page is the zero-based page index the warning applies to, or -1
	// for document-level warnings.
	Page int

	// Message describes the issue.
	Message string
}

func (w Warning) String() string {
	if w.Page < 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page+1, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// convertWarnings lifts loader warnings into pipeline warnings.
func convertWarnings(ws []document.Warning) []Warning {
	if len(ws) == 0 {
		return nil
	}
	out := make([]Warning, len(ws))
	for i, w := range ws {
		out[i] = Warning{Page: w.Page, Message: w.Message}
	}
	return out
}

func warningf(page int, format string, args ...any) Warning {
	return Warning{Page: page, Message: fmt.Sprintf(format, args...)}
}
