package mesh

import "fmt"

// LayoutError reports a structural descriptor that does not fit its
// packed buffer. It is returned before any GPU buffer is allocated.
type LayoutError struct {
	Section string // which part of the descriptor failed, e.g. "vertex bundle 2"
	Reason  string
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	return fmt.Sprintf("mesh layout: %s: %s", e.Section, e.Reason)
}

func layoutErrorf(section, format string, args ...any) *LayoutError {
	return &LayoutError{Section: section, Reason: fmt.Sprintf(format, args...)}
}
