package controllers

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/ratewise-backend/internal/catalog"
	"github.com/angelmondragon/ratewise-backend/internal/pricing"
	"github.com/angelmondragon/ratewise-backend/internal/ratematrix"
	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

type priceMatrixRequest struct {
	Mode                 string                        `json:"mode" validate:"required,oneof=FORWARD REVERSE"`
	DisplayPrices        map[uuid.UUID]decimal.Decimal `json:"display_prices,omitempty" validate:"omitempty,dive,dec_gte=0"`
	FallbackDisplayPrice decimal.NullDecimal           `json:"fallback_display_price" validate:"omitempty,dec_gte=0"`
}

func (r priceMatrixRequest) toRequest() ratematrix.Request {
	return ratematrix.Request{
		Mode: enums.CalculationMode(r.Mode),
		Reverse: pricing.ReverseAnchors{
			DisplayPrices: r.DisplayPrices,
			Fallback:      r.FallbackDisplayPrice,
		},
	}
}

type roomTypePayload struct {
	ID       uuid.UUID           `json:"id" validate:"required"`
	Name     string              `json:"name" validate:"required,max=120"`
	NetPrice decimal.NullDecimal `json:"net_price" validate:"omitempty,dec_gte=0"`
}

type promotionPayload struct {
	ID              uuid.UUID       `json:"id" validate:"required"`
	Name            string          `json:"name" validate:"required,max=120"`
	Group           string          `json:"group" validate:"required,oneof=SEASONAL ESSENTIAL TARGETED CAMPAIGN"`
	SubCategory     string          `json:"sub_category" validate:"omitempty,oneof=EARLY_BIRD LAST_MINUTE MOBILE_RATE COUNTRY_RATE EXCLUSIVE_RATE DEAL_OF_DAY"`
	DiscountPercent decimal.Decimal `json:"discount_percent" validate:"dec_gte=0,dec_lte=100"`
}

type channelPayload struct {
	ID              uuid.UUID          `json:"id" validate:"required"`
	Name            string             `json:"name" validate:"required,max=120"`
	Code            string             `json:"code" validate:"max=40"`
	Commission      decimal.Decimal    `json:"commission" validate:"dec_gte=0,dec_lt=100"`
	CompositionMode string             `json:"composition_mode" validate:"required,oneof=PROGRESSIVE ADDITIVE HIGHEST_WINS SINGLE_ONLY"`
	Active          *bool              `json:"active,omitempty"`
	Promotions      []promotionPayload `json:"promotions" validate:"omitempty,max=50,dive"`
}

type settingsPayload struct {
	RoundingRule string `json:"rounding_rule" validate:"required,oneof=CEIL_TO_1000 ROUND_TO_100 NONE"`
}

// previewRequest carries a full snapshot; promotions are applied in the order posted.
type previewRequest struct {
	priceMatrixRequest
	RoomTypes []roomTypePayload `json:"room_types" validate:"required,min=1,max=200,dive"`
	Channels  []channelPayload  `json:"channels" validate:"required,min=1,max=50,dive"`
	Settings  settingsPayload   `json:"settings"`
}

func (r previewRequest) toSnapshot() catalog.Snapshot {
	snapshot := catalog.Snapshot{
		RoomTypes: make([]pricing.RoomType, 0, len(r.RoomTypes)),
		Channels:  make([]pricing.Channel, 0, len(r.Channels)),
		Settings:  pricing.Settings{RoundingRule: enums.RoundingRule(r.Settings.RoundingRule)},
	}
	for _, rt := range r.RoomTypes {
		snapshot.RoomTypes = append(snapshot.RoomTypes, pricing.RoomType{
			ID:       rt.ID,
			Name:     rt.Name,
			NetPrice: rt.NetPrice,
		})
	}
	for _, ch := range r.Channels {
		promos := make([]pricing.Promotion, 0, len(ch.Promotions))
		for _, p := range ch.Promotions {
			promos = append(promos, pricing.Promotion{
				ID:              p.ID,
				Name:            p.Name,
				Group:           enums.PromotionGroup(p.Group),
				SubCategory:     enums.PromotionSubCategory(p.SubCategory),
				DiscountPercent: p.DiscountPercent,
			})
		}
		snapshot.Channels = append(snapshot.Channels, pricing.Channel{
			ID:              ch.ID,
			Name:            ch.Name,
			Code:            ch.Code,
			Commission:      ch.Commission,
			CompositionMode: enums.CompositionMode(ch.CompositionMode),
			Active:          ch.Active == nil || *ch.Active,
			Promotions:      promos,
		})
	}
	return snapshot
}
