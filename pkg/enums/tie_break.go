package enums

import "fmt"

// TieBreak decides which promotion survives an exclusivity rule.
type TieBreak string

const (
	// TieBreakFirstWins keeps the promotion registered first in the catalog.
	TieBreakFirstWins TieBreak = "FIRST_WINS"
	// TieBreakHighestDiscount keeps the larger percent; catalog order settles exact ties.
	TieBreakHighestDiscount TieBreak = "HIGHEST_DISCOUNT"
)

var validTieBreaks = []TieBreak{
	TieBreakFirstWins,
	TieBreakHighestDiscount,
}

// String implements fmt.Stringer.
func (t TieBreak) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TieBreak.
func (t TieBreak) IsValid() bool {
	for _, candidate := range validTieBreaks {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTieBreak converts raw input into a TieBreak.
func ParseTieBreak(value string) (TieBreak, error) {
	for _, candidate := range validTieBreaks {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tie break %q", value)
}
