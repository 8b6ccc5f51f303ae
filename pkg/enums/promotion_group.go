package enums

import "fmt"

// PromotionGroup is the OTA-level family a promotion belongs to.
type PromotionGroup string

const (
	PromotionGroupSeasonal  PromotionGroup = "SEASONAL"
	PromotionGroupEssential PromotionGroup = "ESSENTIAL"
	PromotionGroupTargeted  PromotionGroup = "TARGETED"
	PromotionGroupCampaign  PromotionGroup = "CAMPAIGN"
)

var validPromotionGroups = []PromotionGroup{
	PromotionGroupSeasonal,
	PromotionGroupEssential,
	PromotionGroupTargeted,
	PromotionGroupCampaign,
}

// String implements fmt.Stringer.
func (g PromotionGroup) String() string {
	return string(g)
}

// IsValid reports whether the value is a known PromotionGroup.
func (g PromotionGroup) IsValid() bool {
	for _, candidate := range validPromotionGroups {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParsePromotionGroup converts raw input into a PromotionGroup.
func ParsePromotionGroup(value string) (PromotionGroup, error) {
	for _, candidate := range validPromotionGroups {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion group %q", value)
}
