package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

// PricingSettings holds one row per hotel.
type PricingSettings struct {
	HotelID      uuid.UUID          `gorm:"column:hotel_id;type:uuid;primaryKey"`
	RoundingRule enums.RoundingRule `gorm:"column:rounding_rule;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (PricingSettings) TableName() string { return "pricing_settings" }

// All lists the persisted models in dependency order.
func All() []any {
	return []any{
		&PricingSettings{},
		&RoomType{},
		&OTAChannel{},
		&Promotion{},
		&Campaign{},
	}
}
