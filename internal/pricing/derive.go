package pricing

import "github.com/shopspring/decimal"

// Derivation holds the unrounded price trio produced from one anchor price.
//
//	display = bar × (1 − discount/100)
//	net     = display × (1 − commission/100)
//
// Commission is assumed to be below 100; callers validate it before deriving.
type Derivation struct {
	Bar        decimal.Decimal
	Display    decimal.Decimal
	Net        decimal.Decimal
	Degenerate bool
}

// DeriveForward grosses a net target up through commission and discount.
func DeriveForward(net, commission, discount decimal.Decimal) Derivation {
	display := net.Div(retained(commission))
	bar, degenerate := barFromDisplay(display, discount)
	return Derivation{
		Bar:        bar,
		Display:    display,
		Net:        net,
		Degenerate: degenerate,
	}
}

// DeriveReverse starts from the price the guest pays. Net is what the channel remits on
// that display price, so it is never back-derived from BAR.
func DeriveReverse(display, commission, discount decimal.Decimal) Derivation {
	bar, degenerate := barFromDisplay(display, discount)
	return Derivation{
		Bar:        bar,
		Display:    display,
		Net:        display.Mul(retained(commission)),
		Degenerate: degenerate,
	}
}

// barFromDisplay returns 0 and true when the discount leaves nothing to divide by.
func barFromDisplay(display, discount decimal.Decimal) (decimal.Decimal, bool) {
	if discount.GreaterThanOrEqual(hundred) {
		return decimal.Zero, true
	}
	return display.Div(retained(discount)), false
}

func retained(percent decimal.Decimal) decimal.Decimal {
	return one.Sub(percent.Div(hundred))
}
