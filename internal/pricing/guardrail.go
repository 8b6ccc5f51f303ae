package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

// Guardrails are the sanity thresholds checked after rounding. A zero threshold disables
// its check.
type Guardrails struct {
	// HighCommissionThreshold is a commission percent above which a warning is raised.
	HighCommissionThreshold decimal.Decimal `json:"high_commission_threshold"`
	// MinRetentionRatio is the smallest acceptable net / BAR ratio.
	MinRetentionRatio decimal.Decimal `json:"min_retention_ratio"`
}

// DefaultGuardrails warns above 30% commission and below 50% retention.
func DefaultGuardrails() Guardrails {
	return Guardrails{
		HighCommissionThreshold: decimal.NewFromInt(30),
		MinRetentionRatio:       decimal.NewFromFloat(0.5),
	}
}

// PricePoint is what the guardrails look at: the rounded trio plus its inputs.
type PricePoint struct {
	Bar               decimal.Decimal
	Display           decimal.Decimal
	Net               decimal.Decimal
	Commission        decimal.Decimal
	EffectiveDiscount decimal.Decimal
}

// Check evaluates every guardrail. It never fails; findings come back as diagnostics.
func (g Guardrails) Check(p PricePoint) Validation {
	v := Validation{Errors: []Diagnostic{}, Warnings: []Diagnostic{}}
	degenerate := p.EffectiveDiscount.GreaterThanOrEqual(hundred)

	if degenerate {
		v.Errors = append(v.Errors, Diagnostic{
			Code:    enums.DiagnosticDegenerateDiscount,
			Message: fmt.Sprintf("effective discount %s is 100%% or more; BAR set to 0", formatPercent(p.EffectiveDiscount)),
		})
	}

	var nonPositive []string
	if !degenerate && !p.Bar.IsPositive() {
		nonPositive = append(nonPositive, "bar")
	}
	if !p.Display.IsPositive() {
		nonPositive = append(nonPositive, "display")
	}
	if !p.Net.IsPositive() {
		nonPositive = append(nonPositive, "net")
	}
	for _, field := range nonPositive {
		v.Errors = append(v.Errors, Diagnostic{
			Code:    enums.DiagnosticNonPositivePrice,
			Message: fmt.Sprintf("%s price is not positive after rounding", field),
		})
	}

	if g.HighCommissionThreshold.IsPositive() && p.Commission.GreaterThan(g.HighCommissionThreshold) {
		v.Warnings = append(v.Warnings, Diagnostic{
			Code:    enums.DiagnosticHighCommission,
			Message: fmt.Sprintf("commission %s exceeds %s", formatPercent(p.Commission), formatPercent(g.HighCommissionThreshold)),
		})
	}

	if g.MinRetentionRatio.IsPositive() && p.Bar.IsPositive() {
		ratio := p.Net.Div(p.Bar)
		if ratio.LessThan(g.MinRetentionRatio) {
			v.Warnings = append(v.Warnings, Diagnostic{
				Code: enums.DiagnosticLowRetention,
				Message: fmt.Sprintf("net keeps %s of BAR, below the %s minimum",
					formatPercent(ratio.Mul(hundred)), formatPercent(g.MinRetentionRatio.Mul(hundred))),
			})
		}
	}

	v.IsValid = len(v.Errors) == 0
	return v
}
