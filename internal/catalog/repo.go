package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/ratewise-backend/internal/pricing"
	"github.com/angelmondragon/ratewise-backend/pkg/db/models"
	"github.com/angelmondragon/ratewise-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ratewise-backend/pkg/errors"
)

// Repository reads hotel pricing configuration.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type activePromotionRow struct {
	ChannelID       uuid.UUID
	PromotionID     uuid.UUID
	Name            string
	PromotionGroup  enums.PromotionGroup
	SubCategory     enums.PromotionSubCategory
	DiscountPercent decimal.Decimal
}

// LoadSnapshot reads everything the engine needs for one hotel. Active room types only;
// channels are returned with their active flag so inactive ones still show in the payload.
func (r *Repository) LoadSnapshot(ctx context.Context, hotelID uuid.UUID) (*Snapshot, error) {
	if hotelID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hotel id is required")
	}
	conn := r.db.WithContext(ctx)

	var settings models.PricingSettings
	if err := conn.Where("hotel_id = ?", hotelID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pricing settings not configured for hotel")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing settings")
	}

	var roomTypes []models.RoomType
	if err := conn.
		Where("hotel_id = ? AND active = ?", hotelID, true).
		Order("created_at ASC, id ASC").
		Find(&roomTypes).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room types")
	}

	var channels []models.OTAChannel
	if err := conn.
		Where("hotel_id = ?", hotelID).
		Order("created_at ASC, id ASC").
		Find(&channels).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load channels")
	}

	var rows []activePromotionRow
	if err := conn.
		Table("campaigns AS c").
		Select("c.channel_id, p.id AS promotion_id, p.name, p.promotion_group, p.sub_category, p.discount_percent").
		Joins("JOIN promotions AS p ON p.id = c.promotion_id AND p.hotel_id = c.hotel_id").
		Where("c.hotel_id = ? AND c.active = ?", hotelID, true).
		Order("p.created_at ASC, p.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active campaigns")
	}

	snapshot := buildSnapshot(hotelID, settings, roomTypes, channels, rows)
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("hotel %s: %w", hotelID, err)
	}
	return snapshot, nil
}

func buildSnapshot(hotelID uuid.UUID, settings models.PricingSettings, roomTypes []models.RoomType, channels []models.OTAChannel, rows []activePromotionRow) *Snapshot {
	byChannel := make(map[uuid.UUID][]pricing.Promotion, len(channels))
	for _, row := range rows {
		byChannel[row.ChannelID] = append(byChannel[row.ChannelID], pricing.Promotion{
			ID:              row.PromotionID,
			Name:            row.Name,
			Group:           row.PromotionGroup,
			SubCategory:     row.SubCategory,
			DiscountPercent: row.DiscountPercent,
		})
	}

	snapshot := &Snapshot{
		HotelID:   hotelID,
		RoomTypes: make([]pricing.RoomType, 0, len(roomTypes)),
		Channels:  make([]pricing.Channel, 0, len(channels)),
		Settings:  pricing.Settings{RoundingRule: settings.RoundingRule},
	}
	for _, rt := range roomTypes {
		snapshot.RoomTypes = append(snapshot.RoomTypes, pricing.RoomType{
			ID:       rt.ID,
			Name:     rt.Name,
			NetPrice: rt.NetPrice,
		})
	}
	for _, ch := range channels {
		promos := byChannel[ch.ID]
		if promos == nil {
			promos = []pricing.Promotion{}
		}
		snapshot.Channels = append(snapshot.Channels, pricing.Channel{
			ID:              ch.ID,
			Name:            ch.Name,
			Code:            ch.Code,
			Commission:      ch.Commission,
			CompositionMode: ch.CompositionMode,
			Active:          ch.Active,
			Promotions:      promos,
		})
	}
	return snapshot
}
