package timeline

import (
	"fmt"
	"strings"
)

// DefaultSprintDays is the sprint window length used when none is configured.
const DefaultSprintDays = 14

// Mode selects the distribution algorithm.
type Mode int

const (
	// ModeSprint buckets items into sprint windows.
	ModeSprint Mode = iota
	// ModeLegacy spreads items one slot each across the whole range.
	ModeLegacy
)

// Span controls how items placed in the same sprint share its window.
type Span int

const (
	// SpanSubdivided splits the sprint window evenly between its items.
	SpanSubdivided Span = iota
	// SpanShared gives every item the whole sprint window.
	SpanShared
)

// Options configures a Distributor.
type Options struct {
	Mode       Mode
	Span       Span
	SprintDays int
}

// ParseMode reads "sprint" or "legacy".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sprint":
		return ModeSprint, nil
	case "legacy", "even":
		return ModeLegacy, nil
	}
	return 0, fmt.Errorf("unknown distribution mode %q", s)
}

// ParseSpan reads "subdivide" or "shared".
func ParseSpan(s string) (Span, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "subdivide", "subdivided":
		return SpanSubdivided, nil
	case "shared":
		return SpanShared, nil
	}
	return 0, fmt.Errorf("unknown sprint span %q", s)
}

func (m Mode) String() string {
	if m == ModeLegacy {
		return "legacy"
	}
	return "sprint"
}

func (s Span) String() string {
	if s == SpanShared {
		return "shared"
	}
	return "subdivide"
}
