package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

// RoundPrice applies a hotel rounding rule to a derived price. Caller-supplied anchors are
// never passed through here.
func RoundPrice(rule enums.RoundingRule, value decimal.Decimal) decimal.Decimal {
	switch rule {
	case enums.RoundingRuleCeilTo1000:
		return value.RoundCeil(-3)
	case enums.RoundingRuleRoundTo100:
		return value.Round(-2)
	default:
		return value.Round(0)
	}
}

// RoundingTolerance is the largest drift a rounding rule may introduce on one price.
func RoundingTolerance(rule enums.RoundingRule) decimal.Decimal {
	switch rule {
	case enums.RoundingRuleCeilTo1000:
		return decimal.NewFromInt(1000)
	case enums.RoundingRuleRoundTo100:
		return decimal.NewFromInt(100)
	default:
		return one
	}
}
