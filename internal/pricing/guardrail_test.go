package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

func TestGuardrailsCheck(t *testing.T) {
	g := DefaultGuardrails()
	tests := []struct {
		name         string
		point        PricePoint
		valid        bool
		wantErrors   []enums.DiagnosticCode
		wantWarnings []enums.DiagnosticCode
	}{
		{
			name:  "healthy",
			point: PricePoint{Bar: dec(t, "1307190"), Display: dec(t, "1176471"), Net: dec(t, "1000000"), Commission: dec(t, "15"), EffectiveDiscount: dec(t, "10")},
			valid: true,
		},
		{
			name:       "degenerate discount does not double report bar",
			point:      PricePoint{Bar: decimal.Zero, Display: dec(t, "1176471"), Net: dec(t, "1000000"), Commission: dec(t, "15"), EffectiveDiscount: dec(t, "105")},
			wantErrors: []enums.DiagnosticCode{enums.DiagnosticDegenerateDiscount},
		},
		{
			name:       "non positive after rounding",
			point:      PricePoint{Bar: decimal.Zero, Display: decimal.Zero, Net: dec(t, "0.4"), Commission: dec(t, "0"), EffectiveDiscount: dec(t, "0")},
			wantErrors: []enums.DiagnosticCode{enums.DiagnosticNonPositivePrice},
		},
		{
			name:         "high commission is advisory",
			point:        PricePoint{Bar: dec(t, "1000"), Display: dec(t, "1000"), Net: dec(t, "650"), Commission: dec(t, "35"), EffectiveDiscount: dec(t, "0")},
			valid:        true,
			wantWarnings: []enums.DiagnosticCode{enums.DiagnosticHighCommission},
		},
		{
			name:         "low retention",
			point:        PricePoint{Bar: dec(t, "1000"), Display: dec(t, "600"), Net: dec(t, "480"), Commission: dec(t, "20"), EffectiveDiscount: dec(t, "40")},
			valid:        true,
			wantWarnings: []enums.DiagnosticCode{enums.DiagnosticLowRetention},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := g.Check(tt.point)
			if v.IsValid != tt.valid {
				t.Fatalf("expected valid=%v got %v (%+v)", tt.valid, v.IsValid, v)
			}
			for _, code := range tt.wantErrors {
				if !v.HasError(code) {
					t.Fatalf("expected error %s in %+v", code, v.Errors)
				}
			}
			for _, code := range tt.wantWarnings {
				if !v.HasWarning(code) {
					t.Fatalf("expected warning %s in %+v", code, v.Warnings)
				}
			}
			if len(tt.wantWarnings) == 0 && len(v.Warnings) != 0 {
				t.Fatalf("unexpected warnings %+v", v.Warnings)
			}
		})
	}
}

func TestGuardrailsDegenerateSkipsBarNonPositive(t *testing.T) {
	v := DefaultGuardrails().Check(PricePoint{
		Bar: decimal.Zero, Display: dec(t, "100"), Net: dec(t, "90"),
		Commission: dec(t, "10"), EffectiveDiscount: dec(t, "100"),
	})
	if v.HasError(enums.DiagnosticNonPositivePrice) {
		t.Fatalf("zero BAR of a degenerate discount must only report degenerate-discount: %+v", v.Errors)
	}
}

func TestGuardrailsZeroThresholdsDisableWarnings(t *testing.T) {
	v := Guardrails{}.Check(PricePoint{
		Bar: dec(t, "1000"), Display: dec(t, "200"), Net: dec(t, "20"),
		Commission: dec(t, "90"), EffectiveDiscount: dec(t, "80"),
	})
	if len(v.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", v.Warnings)
	}
}
