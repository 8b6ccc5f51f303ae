package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

// OTAChannel is an online travel agency a hotel sells through.
type OTAChannel struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	HotelID         uuid.UUID             `gorm:"column:hotel_id;type:uuid;not null;index"`
	Name            string                `gorm:"column:name;not null"`
	Code            string                `gorm:"column:code;not null"`
	Commission      decimal.Decimal       `gorm:"column:commission;type:numeric(5,2);not null"`
	CompositionMode enums.CompositionMode `gorm:"column:composition_mode;not null"`
	Active          bool                  `gorm:"column:active;not null"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (OTAChannel) TableName() string { return "ota_channels" }

func (c *OTAChannel) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
