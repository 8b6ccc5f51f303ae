package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ratewise-backend/pkg/errors"
)

// Options tunes an Engine.
type Options struct {
	Guardrails Guardrails
	TieBreak   enums.TieBreak
	// Workers bounds how many room-type rows are computed concurrently.
	Workers int
	Now     func() time.Time
}

// Engine assembles price matrices. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	guardrails Guardrails
	tieBreak   enums.TieBreak
	workers    int
	now        func() time.Time
}

// NewEngine builds an engine, falling back to first-wins conflicts, one worker and the
// wall clock when the options leave them unset.
func NewEngine(opts Options) *Engine {
	if !opts.TieBreak.IsValid() {
		opts.TieBreak = enums.TieBreakFirstWins
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		guardrails: opts.Guardrails,
		tieBreak:   opts.TieBreak,
		workers:    opts.Workers,
		now:        opts.Now,
	}
}

// Fingerprint identifies the settings that change engine output beyond its input snapshot.
func (e *Engine) Fingerprint() string {
	return fmt.Sprintf("tie=%s;commission=%s;retention=%s",
		e.tieBreak, e.guardrails.HighCommissionThreshold, e.guardrails.MinRetentionRatio)
}

// channelPlan is the room-type independent part of a column: which promotions survive and
// what they compose to.
type channelPlan struct {
	channel     Channel
	resolution  Resolution
	composition Composition
}

// Calculate computes every (room type × active channel) cell of the snapshot. The only
// errors are contract violations in the input and context cancellation.
func (e *Engine) Calculate(ctx context.Context, in Input) (*Matrix, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	plans := make([]channelPlan, 0, len(in.Channels))
	for _, ch := range in.Channels {
		if !ch.Active {
			continue
		}
		resolution := ResolveConflicts(ch.Promotions, e.tieBreak)
		composition, err := ComposeDiscount(ch.CompositionMode, resolution.Resolved)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidSnapshot, err, "compose discount")
		}
		plans = append(plans, channelPlan{channel: ch, resolution: resolution, composition: composition})
	}

	rows := make([][]Cell, len(in.RoomTypes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, rt := range in.RoomTypes {
		i, rt := i, rt
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = e.row(rt, plans, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matrix := &Matrix{
		Mode:         in.Mode,
		RoundingRule: in.Settings.RoundingRule,
		RoomTypes:    make([]RoomTypeRef, 0, len(in.RoomTypes)),
		Channels:     make([]ChannelRef, 0, len(plans)),
		Cells:        make(map[CellKey]Cell, len(in.RoomTypes)*len(plans)),
		CalculatedAt: e.now().UTC(),
	}
	for _, rt := range in.RoomTypes {
		matrix.RoomTypes = append(matrix.RoomTypes, RoomTypeRef{ID: rt.ID, Name: rt.Name})
	}
	for _, plan := range plans {
		ch := plan.channel
		matrix.Channels = append(matrix.Channels, ChannelRef{
			ID:              ch.ID,
			Name:            ch.Name,
			Code:            ch.Code,
			Commission:      ch.Commission,
			CompositionMode: ch.CompositionMode,
		})
	}
	for _, row := range rows {
		for _, cell := range row {
			matrix.Cells[CellKey{RoomTypeID: cell.RoomTypeID, ChannelID: cell.ChannelID}] = cell
		}
	}
	matrix.Stats = summarize(rows)
	return matrix, nil
}

func (e *Engine) row(rt RoomType, plans []channelPlan, in Input) []Cell {
	cells := make([]Cell, 0, len(plans))
	for _, plan := range plans {
		var (
			cell Cell
			ok   bool
		)
		switch in.Mode {
		case enums.CalculationModeReverse:
			cell, ok = e.reverseCell(rt, plan, in.Settings.RoundingRule, in.Reverse)
		default:
			cell, ok = e.forwardCell(rt, plan, in.Settings.RoundingRule), true
		}
		if ok {
			cells = append(cells, cell)
		}
	}
	return cells
}

func newCell(rt RoomType, plan channelPlan) Cell {
	return Cell{
		RoomTypeID:           rt.ID,
		ChannelID:            plan.channel.ID,
		Commission:           plan.channel.Commission,
		TotalDiscountPercent: plan.composition.EffectiveDiscount,
		AppliedPromotions:    nonNilPromotions(plan.composition.Applied),
		RemovedPromotions:    nonNilRemovals(plan.resolution.Removed),
	}
}

func (e *Engine) forwardCell(rt RoomType, plan channelPlan, rule enums.RoundingRule) Cell {
	cell := newCell(rt, plan)
	trace := &traceBuilder{}

	if !rt.NetPrice.Valid || rt.NetPrice.Decimal.IsZero() {
		cell.NoPrice = true
		cell.Validation = Validation{IsValid: true, Errors: []Diagnostic{}, Warnings: []Diagnostic{}}
		trace.note(StepNoPrice, "%s has no net price on file; nothing to derive", rt.Name)
		cell.Trace = trace.steps
		return cell
	}

	ch := plan.channel
	net := rt.NetPrice.Decimal
	d := DeriveForward(net, ch.Commission, plan.composition.EffectiveDiscount)

	trace.price(StepNetPrice, net, "Net target for %s on %s: %s", rt.Name, ch.Name, formatAmount(net))
	trace.conflicts(plan.resolution.Removed)
	trace.note(StepDiscount, "%s", plan.composition.describe())
	trace.price(StepCommission, d.Display, "Display = net %s / (1 - %s commission) = %s",
		formatAmount(net), formatPercent(ch.Commission), formatAmount(d.Display))

	cell.Net = net
	cell.Display = RoundPrice(rule, d.Display)
	trace.price(StepRounding, cell.Display, "%s: display %s -> %s", rule, formatAmount(d.Display), formatAmount(cell.Display))

	// BAR grosses up the rounded display, the same price a REVERSE run would be anchored on.
	d = DeriveReverse(cell.Display, ch.Commission, plan.composition.EffectiveDiscount)
	e.traceBar(trace, d, plan.composition.EffectiveDiscount)
	cell.Bar = d.Bar
	if !d.Degenerate {
		cell.Bar = RoundPrice(rule, d.Bar)
		trace.price(StepRounding, cell.Bar, "%s: BAR %s -> %s", rule, formatAmount(d.Bar), formatAmount(cell.Bar))
	}

	cell.Validation = e.check(cell)
	cell.Trace = trace.steps
	return cell
}

func (e *Engine) reverseCell(rt RoomType, plan channelPlan, rule enums.RoundingRule, anchors ReverseAnchors) (Cell, bool) {
	display, source, ok := anchors.resolve(rt.ID)
	if !ok {
		return Cell{}, false
	}

	cell := newCell(rt, plan)
	trace := &traceBuilder{}
	ch := plan.channel
	d := DeriveReverse(display, ch.Commission, plan.composition.EffectiveDiscount)

	trace.price(StepDisplayPrice, display, "Display price for %s on %s (%s): %s", rt.Name, ch.Name, source, formatAmount(display))
	trace.conflicts(plan.resolution.Removed)
	trace.note(StepDiscount, "%s", plan.composition.describe())
	e.traceBar(trace, d, plan.composition.EffectiveDiscount)
	trace.price(StepNet, d.Net, "Net = display %s x (1 - %s commission) = %s",
		formatAmount(display), formatPercent(ch.Commission), formatAmount(d.Net))

	cell.Display = display
	cell.Net = RoundPrice(rule, d.Net)
	cell.Bar = d.Bar
	if !d.Degenerate {
		cell.Bar = RoundPrice(rule, d.Bar)
		trace.price(StepRounding, cell.Bar, "%s: BAR %s -> %s", rule, formatAmount(d.Bar), formatAmount(cell.Bar))
	}
	trace.price(StepRounding, cell.Net, "%s: net %s -> %s", rule, formatAmount(d.Net), formatAmount(cell.Net))

	cell.Validation = e.check(cell)
	cell.Trace = trace.steps
	return cell, true
}

func (e *Engine) traceBar(trace *traceBuilder, d Derivation, discount decimal.Decimal) {
	if d.Degenerate {
		trace.price(StepBar, d.Bar, "Effective discount %s is 100%% or more: BAR set to 0", formatPercent(discount))
		return
	}
	trace.price(StepBar, d.Bar, "BAR = display %s / (1 - %s discount) = %s",
		formatAmount(d.Display), formatPercent(discount), formatAmount(d.Bar))
}

func (e *Engine) check(cell Cell) Validation {
	return e.guardrails.Check(PricePoint{
		Bar:               cell.Bar,
		Display:           cell.Display,
		Net:               cell.Net,
		Commission:        cell.Commission,
		EffectiveDiscount: cell.TotalDiscountPercent,
	})
}

// resolve picks the display anchor for a room type. Zero prices count as unset.
func (a ReverseAnchors) resolve(roomTypeID uuid.UUID) (decimal.Decimal, string, bool) {
	if price, ok := a.DisplayPrices[roomTypeID]; ok && price.IsPositive() {
		return price, "room type override", true
	}
	if a.Fallback.Valid && a.Fallback.Decimal.IsPositive() {
		return a.Fallback.Decimal, "global fallback", true
	}
	return decimal.Zero, "", false
}

func nonNilPromotions(in []Promotion) []Promotion {
	if in == nil {
		return []Promotion{}
	}
	return in
}

func nonNilRemovals(in []Removal) []Removal {
	if in == nil {
		return []Removal{}
	}
	return in
}
