package daextract

import (
	"fmt"
	"strings"
)

// Warning records a non-fatal drop or skip decision made while
// reconstructing records. The detail carries enough of the offending
// fragments to reproduce the failure from a log alone.
type Warning struct {
	Page   int // 0-based page index
	Reason string
	Detail string
}

// String returns a human-readable form of the warning.
func (w Warning) String() string {
	if w.Detail == "" {
		return fmt.Sprintf("page %d: %s", w.Page, w.Reason)
	}
	return fmt.Sprintf("page %d: %s (%s)", w.Page, w.Reason, w.Detail)
}

// FormatWarnings formats warnings for logging, one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
