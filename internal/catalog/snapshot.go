package catalog

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/ratewise-backend/internal/pricing"
	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

// Snapshot is the hotel configuration a matrix is computed from, already mapped onto engine
// types. Channels keep their promotions in registration order.
type Snapshot struct {
	HotelID   uuid.UUID          `json:"hotel_id"`
	RoomTypes []pricing.RoomType `json:"room_types"`
	Channels  []pricing.Channel  `json:"channels"`
	Settings  pricing.Settings   `json:"settings"`
}

// Input combines the snapshot with a calculation mode and reverse anchors.
func (s Snapshot) Input(mode enums.CalculationMode, anchors pricing.ReverseAnchors) pricing.Input {
	return pricing.Input{
		RoomTypes: s.RoomTypes,
		Channels:  s.Channels,
		Settings:  s.Settings,
		Mode:      mode,
		Reverse:   anchors,
	}
}

// Validate reports adapter contract violations, coded INVALID_SNAPSHOT.
func (s Snapshot) Validate() error {
	return pricing.ValidateInput(s.Input(enums.CalculationModeForward, pricing.ReverseAnchors{}))
}
