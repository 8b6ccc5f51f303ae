package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

// Composition is the effective discount of a channel after its surviving promotions have
// been combined.
type Composition struct {
	Mode              enums.CompositionMode `json:"mode"`
	EffectiveDiscount decimal.Decimal       `json:"effective_discount"`
	Applied           []Promotion           `json:"applied"`
}

// composeFunc turns surviving promotions into the effective percent plus the promotions
// that actually contributed to it.
type composeFunc func(promos []Promotion) (decimal.Decimal, []Promotion)

func strategyFor(mode enums.CompositionMode) (composeFunc, error) {
	switch mode {
	case enums.CompositionModeProgressive:
		return composeProgressive, nil
	case enums.CompositionModeAdditive:
		return composeAdditive, nil
	case enums.CompositionModeHighestWins:
		return composeHighestWins, nil
	case enums.CompositionModeSingleOnly:
		return composeSingleOnly, nil
	default:
		return nil, fmt.Errorf("unsupported composition mode %q", mode)
	}
}

// ComposeDiscount combines the resolved promotions of a channel using its composition mode.
func ComposeDiscount(mode enums.CompositionMode, promos []Promotion) (Composition, error) {
	strategy, err := strategyFor(mode)
	if err != nil {
		return Composition{}, err
	}
	effective, applied := strategy(promos)
	return Composition{
		Mode:              mode,
		EffectiveDiscount: effective,
		Applied:           applied,
	}, nil
}

func composeProgressive(promos []Promotion) (decimal.Decimal, []Promotion) {
	retention := one
	for _, p := range promos {
		retention = retention.Mul(one.Sub(p.DiscountPercent.Div(hundred)))
	}
	return one.Sub(retention).Mul(hundred), promos
}

// composeAdditive never clamps: a sum of 100 or more is reported downstream as a
// degenerate discount.
func composeAdditive(promos []Promotion) (decimal.Decimal, []Promotion) {
	sum := decimal.Zero
	for _, p := range promos {
		sum = sum.Add(p.DiscountPercent)
	}
	return sum, promos
}

func composeHighestWins(promos []Promotion) (decimal.Decimal, []Promotion) {
	if len(promos) == 0 {
		return decimal.Zero, nil
	}
	best := promos[0]
	for _, p := range promos[1:] {
		if p.DiscountPercent.GreaterThan(best.DiscountPercent) {
			best = p
		}
	}
	return best.DiscountPercent, []Promotion{best}
}

func composeSingleOnly(promos []Promotion) (decimal.Decimal, []Promotion) {
	if len(promos) == 0 {
		return decimal.Zero, nil
	}
	return promos[0].DiscountPercent, promos[:1]
}

// describe renders the composition for the audit trace.
func (c Composition) describe() string {
	if len(c.Applied) == 0 {
		return "No active promotions: 0% discount"
	}
	parts := make([]string, 0, len(c.Applied))
	for _, p := range c.Applied {
		parts = append(parts, formatPercent(p.DiscountPercent))
	}
	switch c.Mode {
	case enums.CompositionModeProgressive:
		return fmt.Sprintf("PROGRESSIVE: 1 - Π(1 - pᵢ) over [%s] = %s effective discount", strings.Join(parts, ", "), formatPercent(c.EffectiveDiscount))
	case enums.CompositionModeAdditive:
		return fmt.Sprintf("ADDITIVE: %s = %s effective discount", strings.Join(parts, " + "), formatPercent(c.EffectiveDiscount))
	default:
		return fmt.Sprintf("%s: %s applied = %s effective discount", c.Mode, strings.Join(parts, ", "), formatPercent(c.EffectiveDiscount))
	}
}
