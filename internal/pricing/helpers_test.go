package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}

func promo(name string, group enums.PromotionGroup, sub enums.PromotionSubCategory, percent int64) Promotion {
	return Promotion{
		ID:              uuid.New(),
		Name:            name,
		Group:           group,
		SubCategory:     sub,
		DiscountPercent: decimal.NewFromInt(percent),
	}
}

func channel(name string, commission int64, mode enums.CompositionMode, promos ...Promotion) Channel {
	return Channel{
		ID:              uuid.New(),
		Name:            name,
		Code:            name,
		Commission:      decimal.NewFromInt(commission),
		CompositionMode: mode,
		Active:          true,
		Promotions:      promos,
	}
}

func roomType(name string, net int64) RoomType {
	rt := RoomType{ID: uuid.New(), Name: name}
	if net > 0 {
		rt.NetPrice = decimal.NewNullDecimal(decimal.NewFromInt(net))
	}
	return rt
}

func newTestEngine() *Engine {
	return NewEngine(Options{
		Guardrails: DefaultGuardrails(),
		Workers:    4,
		Now:        func() time.Time { return fixedNow },
	})
}

func assertDecimal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	expected := decimal.RequireFromString(want)
	if !got.Equal(expected) {
		t.Fatalf("%s: expected %s got %s", label, expected, got)
	}
}

func ids(promos []Promotion) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(promos))
	for _, p := range promos {
		out = append(out, p.ID)
	}
	return out
}
