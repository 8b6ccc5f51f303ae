package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

// Promotion is a discount definition in the hotel's catalog. Registration order
// (created_at, id) decides exclusivity ties.
type Promotion struct {
	ID              uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey"`
	HotelID         uuid.UUID                  `gorm:"column:hotel_id;type:uuid;not null;index"`
	Name            string                     `gorm:"column:name;not null"`
	Group           enums.PromotionGroup       `gorm:"column:promotion_group;not null"`
	SubCategory     enums.PromotionSubCategory `gorm:"column:sub_category;not null;default:''"`
	DiscountPercent decimal.Decimal            `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	CreatedAt       time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Promotion) TableName() string { return "promotions" }

func (p *Promotion) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
