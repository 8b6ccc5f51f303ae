package enums

import "fmt"

// RoundingRule defines how derived prices are rounded for a hotel.
type RoundingRule string

const (
	RoundingRuleCeilTo1000 RoundingRule = "CEIL_TO_1000"
	RoundingRuleRoundTo100 RoundingRule = "ROUND_TO_100"
	RoundingRuleNone       RoundingRule = "NONE"
)

var validRoundingRules = []RoundingRule{
	RoundingRuleCeilTo1000,
	RoundingRuleRoundTo100,
	RoundingRuleNone,
}

// String implements fmt.Stringer.
func (r RoundingRule) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoundingRule.
func (r RoundingRule) IsValid() bool {
	for _, candidate := range validRoundingRules {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoundingRule converts raw input into a RoundingRule.
func ParseRoundingRule(value string) (RoundingRule, error) {
	for _, candidate := range validRoundingRules {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rounding rule %q", value)
}
