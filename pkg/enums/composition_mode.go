package enums

import "fmt"

// CompositionMode controls how the surviving promotions of a channel combine into one
// effective discount.
type CompositionMode string

const (
	// CompositionModeProgressive multiplies retentions: 1 - Π(1 - pᵢ).
	CompositionModeProgressive CompositionMode = "PROGRESSIVE"
	// CompositionModeAdditive sums percents without clamping.
	CompositionModeAdditive CompositionMode = "ADDITIVE"
	// CompositionModeHighestWins applies only the largest percent.
	CompositionModeHighestWins CompositionMode = "HIGHEST_WINS"
	// CompositionModeSingleOnly applies only the first surviving promotion in catalog order.
	CompositionModeSingleOnly CompositionMode = "SINGLE_ONLY"
)

var validCompositionModes = []CompositionMode{
	CompositionModeProgressive,
	CompositionModeAdditive,
	CompositionModeHighestWins,
	CompositionModeSingleOnly,
}

// String implements fmt.Stringer.
func (m CompositionMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known CompositionMode.
func (m CompositionMode) IsValid() bool {
	for _, candidate := range validCompositionModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseCompositionMode converts raw input into a CompositionMode.
func ParseCompositionMode(value string) (CompositionMode, error) {
	for _, candidate := range validCompositionModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid composition mode %q", value)
}
