package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	pkgerrors "github.com/angelmondragon/ratewise-backend/pkg/errors"
)

// ValidateInput rejects snapshots that break the adapter contract. Business conditions such
// as a discount sum over 100% are not violations; they surface as cell diagnostics.
func ValidateInput(in Input) error {
	var errs error

	if !in.Mode.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("mode: invalid value %q", in.Mode))
	}
	if !in.Settings.RoundingRule.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("settings.rounding_rule: invalid value %q", in.Settings.RoundingRule))
	}

	seenRooms := make(map[uuid.UUID]struct{}, len(in.RoomTypes))
	for i, rt := range in.RoomTypes {
		field := fmt.Sprintf("room_types[%d]", i)
		if rt.ID == uuid.Nil {
			errs = multierr.Append(errs, fmt.Errorf("%s.id: is required", field))
		} else if _, dup := seenRooms[rt.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s.id: duplicate %s", field, rt.ID))
		}
		seenRooms[rt.ID] = struct{}{}
		if rt.NetPrice.Valid && rt.NetPrice.Decimal.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("%s.net_price: must not be negative", field))
		}
	}

	seenChannels := make(map[uuid.UUID]struct{}, len(in.Channels))
	for i, ch := range in.Channels {
		if !ch.Active {
			continue
		}
		errs = multierr.Append(errs, validateChannel(fmt.Sprintf("channels[%d]", i), ch, seenChannels))
	}

	for id, price := range in.Reverse.DisplayPrices {
		if price.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("reverse.display_prices[%s]: must not be negative", id))
		}
	}
	if in.Reverse.Fallback.Valid && in.Reverse.Fallback.Decimal.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("reverse.fallback: must not be negative"))
	}

	if errs == nil {
		return nil
	}
	violations := []string{}
	for _, e := range multierr.Errors(errs) {
		violations = append(violations, e.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeInvalidSnapshot, errs, "invalid pricing snapshot").
		WithDetails(map[string]any{"violations": violations})
}

func validateChannel(field string, ch Channel, seen map[uuid.UUID]struct{}) error {
	var errs error
	if ch.ID == uuid.Nil {
		errs = multierr.Append(errs, fmt.Errorf("%s.id: is required", field))
	} else if _, dup := seen[ch.ID]; dup {
		errs = multierr.Append(errs, fmt.Errorf("%s.id: duplicate %s", field, ch.ID))
	}
	seen[ch.ID] = struct{}{}

	if ch.Commission.IsNegative() || ch.Commission.GreaterThanOrEqual(hundred) {
		errs = multierr.Append(errs, fmt.Errorf("%s.commission: must be in [0,100), got %s", field, ch.Commission))
	}
	if !ch.CompositionMode.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("%s.composition_mode: invalid value %q", field, ch.CompositionMode))
	}

	seenPromos := make(map[uuid.UUID]struct{}, len(ch.Promotions))
	for j, p := range ch.Promotions {
		pf := fmt.Sprintf("%s.promotions[%d]", field, j)
		if p.ID == uuid.Nil {
			errs = multierr.Append(errs, fmt.Errorf("%s.id: is required", pf))
		} else if _, dup := seenPromos[p.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s.id: duplicate %s", pf, p.ID))
		}
		seenPromos[p.ID] = struct{}{}
		if !p.Group.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("%s.group: invalid value %q", pf, p.Group))
		}
		if !p.SubCategory.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("%s.sub_category: invalid value %q", pf, p.SubCategory))
		}
		if p.DiscountPercent.IsNegative() || p.DiscountPercent.GreaterThan(hundred) {
			errs = multierr.Append(errs, fmt.Errorf("%s.discount_percent: must be in [0,100], got %s", pf, p.DiscountPercent))
		}
	}
	return errs
}
