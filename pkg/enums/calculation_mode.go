package enums

import "fmt"

// CalculationMode selects which anchor price a matrix is derived from.
type CalculationMode string

const (
	// CalculationModeForward derives BAR and display from the hotel net price.
	CalculationModeForward CalculationMode = "FORWARD"
	// CalculationModeReverse derives BAR and net from a guest-visible display price.
	CalculationModeReverse CalculationMode = "REVERSE"
)

var validCalculationModes = []CalculationMode{
	CalculationModeForward,
	CalculationModeReverse,
}

// String implements fmt.Stringer.
func (m CalculationMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known CalculationMode.
func (m CalculationMode) IsValid() bool {
	for _, candidate := range validCalculationModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseCalculationMode converts raw input into a CalculationMode.
func ParseCalculationMode(value string) (CalculationMode, error) {
	for _, candidate := range validCalculationModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid calculation mode %q", value)
}
