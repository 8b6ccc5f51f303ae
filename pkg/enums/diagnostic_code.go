package enums

// DiagnosticCode identifies a guardrail finding attached to a matrix cell.
type DiagnosticCode string

const (
	DiagnosticDegenerateDiscount DiagnosticCode = "degenerate-discount"
	DiagnosticNonPositivePrice   DiagnosticCode = "non-positive-price"
	DiagnosticHighCommission     DiagnosticCode = "high-commission"
	DiagnosticLowRetention       DiagnosticCode = "low-retention"
	DiagnosticNoPrice            DiagnosticCode = "no-price"
)

// String implements fmt.Stringer.
func (c DiagnosticCode) String() string {
	return string(c)
}
