package pricing

import "github.com/shopspring/decimal"

// Stats aggregates a matrix. Cells is every emitted cell, so Cells = Priced + NoPrice.
// No-price cells are excluded from every other aggregate: the validity counts and the
// display and net figures cover priced cells only.
type Stats struct {
	Cells        int                 `json:"cells"`
	Priced       int                 `json:"priced"`
	Valid        int                 `json:"valid"`
	Invalid      int                 `json:"invalid"`
	WithWarnings int                 `json:"with_warnings"`
	NoPrice      int                 `json:"no_price"`
	MinDisplay   decimal.NullDecimal `json:"min_display"`
	MaxDisplay   decimal.NullDecimal `json:"max_display"`
	AvgDisplay   decimal.NullDecimal `json:"avg_display"`
	AvgNet       decimal.NullDecimal `json:"avg_net"`
}

func summarize(rows [][]Cell) Stats {
	var (
		stats      Stats
		displaySum = decimal.Zero
		netSum     = decimal.Zero
	)
	for _, row := range rows {
		for _, cell := range row {
			stats.Cells++
			if cell.NoPrice {
				stats.NoPrice++
				continue
			}
			stats.Priced++
			if cell.Validation.IsValid {
				stats.Valid++
			} else {
				stats.Invalid++
			}
			if len(cell.Validation.Warnings) > 0 {
				stats.WithWarnings++
			}
			displaySum = displaySum.Add(cell.Display)
			netSum = netSum.Add(cell.Net)
			if !stats.MinDisplay.Valid || cell.Display.LessThan(stats.MinDisplay.Decimal) {
				stats.MinDisplay = decimal.NewNullDecimal(cell.Display)
			}
			if !stats.MaxDisplay.Valid || cell.Display.GreaterThan(stats.MaxDisplay.Decimal) {
				stats.MaxDisplay = decimal.NewNullDecimal(cell.Display)
			}
		}
	}
	if stats.Priced > 0 {
		count := decimal.NewFromInt(int64(stats.Priced))
		stats.AvgDisplay = decimal.NewNullDecimal(displaySum.Div(count).Round(2))
		stats.AvgNet = decimal.NewNullDecimal(netSum.Div(count).Round(2))
	}
	return stats
}
