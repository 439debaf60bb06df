package enrichment

import "strings"

// Mode selects how p-values are normalised
type Mode int

const (
	// Standard reports P(X >= k)
	Standard Mode = iota
	// Conditional reports P(X >= k) / P(X >= 1)
	Conditional
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case Conditional:
		return "conditional"
	default:
		return "standard"
	}
}

// ParseMode maps a mode name to a Mode. Any name starting with 'c' selects
// Conditional and everything else Standard, which is what existing callers
// rely on. Note that "custom" therefore means Conditional.
func ParseMode(s string) Mode {
	if strings.HasPrefix(s, "c") {
		return Conditional
	}
	return Standard
}
