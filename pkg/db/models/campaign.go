package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Campaign runs one promotion on one channel.
type Campaign struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	HotelID     uuid.UUID `gorm:"column:hotel_id;type:uuid;not null;index"`
	ChannelID   uuid.UUID `gorm:"column:channel_id;type:uuid;not null"`
	PromotionID uuid.UUID `gorm:"column:promotion_id;type:uuid;not null"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Campaign) TableName() string { return "campaigns" }

func (c *Campaign) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
