package ratematrix

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/ratewise-backend/internal/catalog"
	"github.com/angelmondragon/ratewise-backend/internal/pricing"
	"github.com/angelmondragon/ratewise-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ratewise-backend/pkg/errors"
	"github.com/angelmondragon/ratewise-backend/pkg/logger"
	"github.com/angelmondragon/ratewise-backend/pkg/metrics"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type stubLoader struct {
	snapshot *catalog.Snapshot
	err      error
	calls    int
}

func (s *stubLoader) LoadSnapshot(ctx context.Context, hotelID uuid.UUID) (*catalog.Snapshot, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

type countingEngine struct {
	*pricing.Engine
	calls int
}

func (c *countingEngine) Calculate(ctx context.Context, in pricing.Input) (*pricing.Matrix, error) {
	c.calls++
	return c.Engine.Calculate(ctx, in)
}

type memoryStore struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	if m.failGet {
		return "", errors.New("connection reset")
	}
	v, ok := m.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.data[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) MatrixKey(scope, digest string) string {
	return "test:" + scope + ":" + digest
}

func scenarioSnapshot(hotelID uuid.UUID) *catalog.Snapshot {
	earlyBird := pricing.Promotion{ID: uuid.New(), Name: "Early bird", Group: enums.PromotionGroupEssential, SubCategory: enums.PromotionSubCategoryEarlyBird, DiscountPercent: decimal.NewFromInt(10)}
	lastMinute := pricing.Promotion{ID: uuid.New(), Name: "Last minute", Group: enums.PromotionGroupEssential, SubCategory: enums.PromotionSubCategoryLastMinute, DiscountPercent: decimal.NewFromInt(8)}
	return &catalog.Snapshot{
		HotelID: hotelID,
		RoomTypes: []pricing.RoomType{
			{ID: uuid.New(), Name: "Deluxe", NetPrice: decimal.NewNullDecimal(decimal.NewFromInt(1_000_000))},
			{ID: uuid.New(), Name: "Standard"},
		},
		Channels: []pricing.Channel{{
			ID:              uuid.New(),
			Name:            "Booking.com",
			Code:            "BOOKING",
			Commission:      decimal.NewFromInt(15),
			CompositionMode: enums.CompositionModeAdditive,
			Active:          true,
			Promotions:      []pricing.Promotion{earlyBird, lastMinute},
		}},
		Settings: pricing.Settings{RoundingRule: enums.RoundingRuleNone},
	}
}

type fixture struct {
	svc    Service
	loader *stubLoader
	engine *countingEngine
	store  *memoryStore
	reg    *prometheus.Registry
	logs   *bytes.Buffer
}

func newFixture(t *testing.T, withCache bool) fixture {
	t.Helper()
	hotelID := uuid.New()
	f := fixture{
		loader: &stubLoader{snapshot: scenarioSnapshot(hotelID)},
		engine: &countingEngine{Engine: pricing.NewEngine(pricing.Options{
			Guardrails: pricing.DefaultGuardrails(),
			Now:        func() time.Time { return fixedNow },
		})},
		store: newMemoryStore(),
		reg:   prometheus.NewRegistry(),
		logs:  &bytes.Buffer{},
	}
	var cache *Cache
	if withCache {
		cache = NewCache(f.store, 10*time.Minute)
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: f.logs})
	svc, err := NewService(f.loader, f.engine, cache, metrics.NewPricingMetrics(f.reg), logg)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f fixture) hotelID() uuid.UUID {
	return f.loader.snapshot.HotelID
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	engine := pricing.NewEngine(pricing.Options{})

	_, err := NewService(nil, engine, nil, nil, logg)
	require.Error(t, err)
	_, err = NewService(&stubLoader{}, nil, nil, nil, logg)
	require.Error(t, err)
	_, err = NewService(&stubLoader{}, engine, nil, nil, nil)
	require.Error(t, err)
}

func TestCalculateForwardScenario(t *testing.T) {
	f := newFixture(t, false)

	matrix, err := f.svc.Calculate(context.Background(), f.hotelID(), Request{Mode: enums.CalculationModeForward})
	require.NoError(t, err)

	deluxe := f.loader.snapshot.RoomTypes[0]
	ch := f.loader.snapshot.Channels[0]
	cell, ok := matrix.Cell(deluxe.ID, ch.ID)
	require.True(t, ok)
	require.True(t, cell.TotalDiscountPercent.Equal(decimal.NewFromInt(10)), "LAST_MINUTE is pruned")
	require.True(t, cell.Display.Equal(decimal.NewFromInt(1_176_471)))
	require.True(t, cell.Bar.Equal(decimal.NewFromInt(1_307_190)))
	require.Len(t, cell.RemovedPromotions, 1)

	require.Equal(t, 2, matrix.Stats.Cells)
	require.Equal(t, 1, matrix.Stats.NoPrice)

	require.Contains(t, f.logs.String(), `"message":"pricing.matrix.calculated"`)
	require.Contains(t, f.logs.String(), `"hotel_id":"`+f.hotelID().String()+`"`)
	require.Contains(t, f.logs.String(), `"cache_hit":false`)
}

func TestCalculatePropagatesLoaderErrors(t *testing.T) {
	f := newFixture(t, false)
	f.loader.err = pkgerrors.New(pkgerrors.CodeNotFound, "pricing settings not configured for hotel")

	_, err := f.svc.Calculate(context.Background(), f.hotelID(), Request{Mode: enums.CalculationModeForward})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
	require.Zero(t, f.engine.calls)
}

func TestCalculateRejectsUnknownMode(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Calculate(context.Background(), f.hotelID(), Request{Mode: "SIDEWAYS"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestCalculateContractViolationIsInvalidSnapshot(t *testing.T) {
	f := newFixture(t, false)
	f.loader.snapshot.Channels[0].Commission = decimal.NewFromInt(100)

	_, err := f.svc.Calculate(context.Background(), f.hotelID(), Request{Mode: enums.CalculationModeForward})
	require.Equal(t, pkgerrors.CodeInvalidSnapshot, pkgerrors.CodeOf(err))
}

func TestCacheServesIdenticalInputs(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	req := Request{Mode: enums.CalculationModeForward}

	first, err := f.svc.Calculate(ctx, f.hotelID(), req)
	require.NoError(t, err)
	second, err := f.svc.Calculate(ctx, f.hotelID(), req)
	require.NoError(t, err)

	require.Equal(t, 1, f.engine.calls)
	require.Len(t, f.store.data, 1)
	for _, ttl := range f.store.ttls {
		require.Equal(t, 10*time.Minute, ttl)
	}
	require.Equal(t, first.Stats.Cells, second.Stats.Cells)
	require.Equal(t, first.Stats.NoPrice, second.Stats.NoPrice)
	require.True(t, first.Stats.AvgDisplay.Decimal.Equal(second.Stats.AvgDisplay.Decimal))
	require.Len(t, second.Cells, len(first.Cells))
	for key, cell := range first.Cells {
		cached, ok := second.Cells[key]
		require.True(t, ok)
		require.True(t, cell.Bar.Equal(cached.Bar))
		require.True(t, cell.Display.Equal(cached.Display))
		require.Len(t, cached.Trace, len(cell.Trace))
		for i, step := range cell.Trace {
			require.Equal(t, step.Step, cached.Trace[i].Step)
			require.Equal(t, step.Description, cached.Trace[i].Description)
		}
	}
	require.Contains(t, f.logs.String(), `"cache_hit":true`)
}

func TestCacheKeyChangesWithConfiguration(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	req := Request{Mode: enums.CalculationModeForward}

	_, err := f.svc.Calculate(ctx, f.hotelID(), req)
	require.NoError(t, err)

	f.loader.snapshot.Channels[0].Commission = decimal.NewFromInt(18)
	_, err = f.svc.Calculate(ctx, f.hotelID(), req)
	require.NoError(t, err)

	_, err = f.svc.Calculate(ctx, f.hotelID(), Request{Mode: enums.CalculationModeReverse, Reverse: pricing.ReverseAnchors{
		Fallback: decimal.NewNullDecimal(decimal.NewFromInt(500_000)),
	}})
	require.NoError(t, err)

	require.Equal(t, 3, f.engine.calls)
	require.Len(t, f.store.data, 3)
}

func TestCacheReadFailureFallsBackToEngine(t *testing.T) {
	f := newFixture(t, true)
	f.store.failGet = true

	matrix, err := f.svc.Calculate(context.Background(), f.hotelID(), Request{Mode: enums.CalculationModeForward})
	require.NoError(t, err)
	require.NotNil(t, matrix)
	require.Equal(t, 1, f.engine.calls)
	require.Contains(t, f.logs.String(), "pricing.matrix.cache_read_failed")
}

func TestPreviewSkipsLoader(t *testing.T) {
	f := newFixture(t, false)
	snapshot := scenarioSnapshot(uuid.Nil)
	snapshot.Channels[0].CompositionMode = enums.CompositionModeProgressive
	snapshot.Channels[0].Promotions = snapshot.Channels[0].Promotions[:1]

	matrix, err := f.svc.Preview(context.Background(), *snapshot, Request{Mode: enums.CalculationModeReverse, Reverse: pricing.ReverseAnchors{
		DisplayPrices: map[uuid.UUID]decimal.Decimal{snapshot.RoomTypes[0].ID: decimal.NewFromInt(500_000)},
	}})
	require.NoError(t, err)
	require.Zero(t, f.loader.calls)

	require.Len(t, matrix.Cells, 1, "standard has no display anchor and is skipped")
	cell, ok := matrix.Cell(snapshot.RoomTypes[0].ID, snapshot.Channels[0].ID)
	require.True(t, ok)
	require.True(t, cell.Display.Equal(decimal.NewFromInt(500_000)))
	require.True(t, cell.Net.Equal(decimal.NewFromInt(425_000)))
}

func TestMetricsRecordedPerCalculation(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Calculate(context.Background(), f.hotelID(), Request{Mode: enums.CalculationModeForward})
	require.NoError(t, err)

	mfs, err := f.reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	require.True(t, names["price_matrix_duration_seconds"])
	require.True(t, names["price_matrix_cells_total"])
	require.True(t, names["price_matrix_conflicts_total"])
	require.False(t, names["price_matrix_cache_total"], "cache disabled")
}
