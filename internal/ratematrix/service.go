package ratematrix

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/ratewise-backend/internal/catalog"
	"github.com/angelmondragon/ratewise-backend/internal/pricing"
	"github.com/angelmondragon/ratewise-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ratewise-backend/pkg/errors"
	"github.com/angelmondragon/ratewise-backend/pkg/logger"
	"github.com/angelmondragon/ratewise-backend/pkg/metrics"
)

type snapshotLoader interface {
	LoadSnapshot(ctx context.Context, hotelID uuid.UUID) (*catalog.Snapshot, error)
}

type calculator interface {
	Calculate(ctx context.Context, in pricing.Input) (*pricing.Matrix, error)
	Fingerprint() string
}

// Request selects the calculation direction. Reverse is only read in REVERSE mode.
type Request struct {
	Mode    enums.CalculationMode
	Reverse pricing.ReverseAnchors
}

// Service computes price matrices for hotels.
type Service interface {
	Calculate(ctx context.Context, hotelID uuid.UUID, req Request) (*pricing.Matrix, error)
	Preview(ctx context.Context, snapshot catalog.Snapshot, req Request) (*pricing.Matrix, error)
}

type service struct {
	loader  snapshotLoader
	engine  calculator
	cache   *Cache
	metrics *metrics.PricingMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService wires the matrix service. cache and pricingMetrics may be nil.
func NewService(loader snapshotLoader, engine calculator, cache *Cache, pricingMetrics *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("snapshot loader required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		loader:  loader,
		engine:  engine,
		cache:   cache,
		metrics: pricingMetrics,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (s *service) Calculate(ctx context.Context, hotelID uuid.UUID, req Request) (*pricing.Matrix, error) {
	ctx = s.logg.WithHotelID(ctx, hotelID.String())
	snapshot, err := s.loader.LoadSnapshot(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, hotelID.String(), snapshot.Input(req.Mode, req.Reverse))
}

func (s *service) Preview(ctx context.Context, snapshot catalog.Snapshot, req Request) (*pricing.Matrix, error) {
	if snapshot.HotelID != uuid.Nil {
		ctx = s.logg.WithHotelID(ctx, snapshot.HotelID.String())
	}
	return s.run(ctx, previewScope, snapshot.Input(req.Mode, req.Reverse))
}

func (s *service) run(ctx context.Context, scope string, in pricing.Input) (*pricing.Matrix, error) {
	if !in.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mode must be FORWARD or REVERSE")
	}
	ctx = s.logg.WithCalculationMode(ctx, in.Mode.String())
	started := s.now()

	key := ""
	if s.cache != nil {
		var err error
		key, err = s.cache.key(scope, in, s.engine.Fingerprint())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cache key")
		}
		cached, err := s.cache.get(ctx, key)
		switch {
		case err != nil:
			s.metrics.IncCache(metrics.CacheError)
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.matrix.cache_read_failed")
		case cached != nil:
			s.metrics.IncCache(metrics.CacheHit)
			s.logCalculated(ctx, cached, true, s.now().Sub(started))
			return cached, nil
		default:
			s.metrics.IncCache(metrics.CacheMiss)
		}
	}

	matrix, err := s.engine.Calculate(ctx, in)
	elapsed := s.now().Sub(started)
	if err != nil {
		s.metrics.ObserveCalculation(in.Mode.String(), metrics.OutcomeFailure, elapsed)
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "calculate price matrix")
		}
		return nil, err
	}
	s.metrics.ObserveCalculation(in.Mode.String(), metrics.OutcomeSuccess, elapsed)
	s.recordCells(matrix)

	if s.cache != nil {
		if err := s.cache.put(ctx, key, matrix); err != nil {
			s.metrics.IncCache(metrics.CacheError)
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.matrix.cache_write_failed")
		}
	}

	s.logCalculated(ctx, matrix, false, elapsed)
	return matrix, nil
}

func (s *service) recordCells(matrix *pricing.Matrix) {
	s.metrics.AddCells("valid", matrix.Stats.Valid)
	s.metrics.AddCells("invalid", matrix.Stats.Invalid)
	s.metrics.AddCells("warning", matrix.Stats.WithWarnings)
	s.metrics.AddCells("no_price", matrix.Stats.NoPrice)
	for _, cell := range matrix.Cells {
		for _, removal := range cell.RemovedPromotions {
			s.metrics.IncConflict(removal.Rule)
		}
	}
}

func (s *service) logCalculated(ctx context.Context, matrix *pricing.Matrix, cacheHit bool, elapsed time.Duration) {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"cells":         matrix.Stats.Cells,
		"invalid_cells": matrix.Stats.Invalid,
		"no_price":      matrix.Stats.NoPrice,
		"cache_hit":     cacheHit,
		"duration_ms":   elapsed.Milliseconds(),
	})
	s.logg.Info(ctx, "pricing.matrix.calculated")
}
