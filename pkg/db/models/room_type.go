package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomType is a sellable room category of a hotel. NetPrice stays NULL until the hotel sets a
// revenue target.
type RoomType struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	HotelID   uuid.UUID           `gorm:"column:hotel_id;type:uuid;not null;index"`
	Name      string              `gorm:"column:name;not null"`
	NetPrice  decimal.NullDecimal `gorm:"column:net_price;type:numeric(14,2)"`
	Active    bool                `gorm:"column:active;not null"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (RoomType) TableName() string { return "room_types" }

func (r *RoomType) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
