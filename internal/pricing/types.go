package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// RoomType is the sellable unit a hotel prices. NetPrice is unset when the hotel has not
// entered a target yet.
type RoomType struct {
	ID       uuid.UUID           `json:"id"`
	Name     string              `json:"name"`
	NetPrice decimal.NullDecimal `json:"net_price"`
}

// Promotion is one discount running on a channel through an active campaign.
type Promotion struct {
	ID              uuid.UUID                  `json:"id"`
	Name            string                     `json:"name"`
	Group           enums.PromotionGroup       `json:"group"`
	SubCategory     enums.PromotionSubCategory `json:"sub_category"`
	DiscountPercent decimal.Decimal            `json:"discount_percent"`
}

// Channel is an OTA with its commission, composition mode and the promotions currently
// active on it, in catalog (registration) order.
type Channel struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Code            string                `json:"code"`
	Commission      decimal.Decimal       `json:"commission"`
	CompositionMode enums.CompositionMode `json:"composition_mode"`
	Active          bool                  `json:"active"`
	Promotions      []Promotion           `json:"promotions"`
}

// Settings holds the hotel-scoped pricing preferences.
type Settings struct {
	RoundingRule enums.RoundingRule `json:"rounding_rule"`
}

// ReverseAnchors supplies display prices for REVERSE calculations. A per-room-type entry
// wins over Fallback.
type ReverseAnchors struct {
	DisplayPrices map[uuid.UUID]decimal.Decimal `json:"display_prices,omitempty"`
	Fallback      decimal.NullDecimal           `json:"fallback"`
}

// Input is the fully materialized snapshot a matrix is computed from.
type Input struct {
	RoomTypes []RoomType            `json:"room_types"`
	Channels  []Channel             `json:"channels"`
	Settings  Settings              `json:"settings"`
	Mode      enums.CalculationMode `json:"mode"`
	Reverse   ReverseAnchors        `json:"reverse"`
}

// CellKey addresses one (room type, channel) pair of a matrix.
type CellKey struct {
	RoomTypeID uuid.UUID
	ChannelID  uuid.UUID
}

func (k CellKey) String() string {
	return k.RoomTypeID.String() + ":" + k.ChannelID.String()
}

// MarshalText lets CellKey act as a JSON object key.
func (k CellKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the "<room_type_id>:<channel_id>" form.
func (k *CellKey) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid cell key %q", string(text))
	}
	roomTypeID, err := uuid.Parse(parts[0])
	if err != nil {
		return fmt.Errorf("invalid cell key room type: %w", err)
	}
	channelID, err := uuid.Parse(parts[1])
	if err != nil {
		return fmt.Errorf("invalid cell key channel: %w", err)
	}
	k.RoomTypeID = roomTypeID
	k.ChannelID = channelID
	return nil
}

// Diagnostic is a guardrail finding.
type Diagnostic struct {
	Code    enums.DiagnosticCode `json:"code"`
	Message string               `json:"message"`
}

// Validation summarises the guardrail findings of a cell. Errors make the cell invalid,
// warnings never do.
type Validation struct {
	IsValid  bool         `json:"is_valid"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
}

// HasError reports whether the validation carries the given error code.
func (v Validation) HasError(code enums.DiagnosticCode) bool {
	for _, d := range v.Errors {
		if d.Code == code {
			return true
		}
	}
	return false
}

// HasWarning reports whether the validation carries the given warning code.
func (v Validation) HasWarning(code enums.DiagnosticCode) bool {
	for _, d := range v.Warnings {
		if d.Code == code {
			return true
		}
	}
	return false
}

// TraceStep is one line of the audit trail rendered next to a cell. PriceAfter is null for
// informational steps.
type TraceStep struct {
	Step        string              `json:"step"`
	Description string              `json:"description"`
	PriceAfter  decimal.NullDecimal `json:"price_after"`
}

// Cell is the computed price trio for one room type on one channel.
type Cell struct {
	RoomTypeID           uuid.UUID       `json:"room_type_id"`
	ChannelID            uuid.UUID       `json:"channel_id"`
	Bar                  decimal.Decimal `json:"bar"`
	Display              decimal.Decimal `json:"display"`
	Net                  decimal.Decimal `json:"net"`
	Commission           decimal.Decimal `json:"commission"`
	TotalDiscountPercent decimal.Decimal `json:"total_discount_percent"`
	NoPrice              bool            `json:"no_price,omitempty"`
	AppliedPromotions    []Promotion     `json:"applied_promotions"`
	RemovedPromotions    []Removal       `json:"removed_promotions"`
	Validation           Validation      `json:"validation"`
	Trace                []TraceStep     `json:"trace"`
}

// RoomTypeRef and ChannelRef describe the matrix axes.
type RoomTypeRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ChannelRef struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Code            string                `json:"code"`
	Commission      decimal.Decimal       `json:"commission"`
	CompositionMode enums.CompositionMode `json:"composition_mode"`
}

// Matrix is the full price grid for one snapshot.
type Matrix struct {
	Mode         enums.CalculationMode `json:"mode"`
	RoundingRule enums.RoundingRule    `json:"rounding_rule"`
	RoomTypes    []RoomTypeRef         `json:"room_types"`
	Channels     []ChannelRef          `json:"channels"`
	Cells        map[CellKey]Cell      `json:"cells"`
	Stats        Stats                 `json:"stats"`
	CalculatedAt time.Time             `json:"calculated_at"`
}

// Cell returns the cell for the pair, if one was emitted.
func (m *Matrix) Cell(roomTypeID, channelID uuid.UUID) (Cell, bool) {
	if m == nil {
		return Cell{}, false
	}
	cell, ok := m.Cells[CellKey{RoomTypeID: roomTypeID, ChannelID: channelID}]
	return cell, ok
}
