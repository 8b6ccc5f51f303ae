package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	StepNetPrice     = "net_price"
	StepDisplayPrice = "display_price"
	StepConflict     = "conflict"
	StepDiscount     = "discount"
	StepCommission   = "commission"
	StepBar          = "bar"
	StepNet          = "net"
	StepRounding     = "rounding"
	StepNoPrice      = "no_price"
)

type traceBuilder struct {
	steps []TraceStep
}

func (t *traceBuilder) price(step string, price decimal.Decimal, format string, args ...any) {
	t.steps = append(t.steps, TraceStep{
		Step:        step,
		Description: fmt.Sprintf(format, args...),
		PriceAfter:  decimal.NewNullDecimal(price),
	})
}

func (t *traceBuilder) note(step string, format string, args ...any) {
	t.steps = append(t.steps, TraceStep{
		Step:        step,
		Description: fmt.Sprintf(format, args...),
	})
}

func (t *traceBuilder) conflicts(removed []Removal) {
	for _, r := range removed {
		t.note(StepConflict, "%s", r.Reason)
	}
}

func formatAmount(d decimal.Decimal) string {
	return d.Round(2).String()
}

func formatPercent(d decimal.Decimal) string {
	return d.Round(4).String() + "%"
}
