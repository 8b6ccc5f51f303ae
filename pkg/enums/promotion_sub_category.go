package enums

import "fmt"

// PromotionSubCategory narrows a promotion to the behaviour the conflict rules care about.
// The zero value means the promotion has no sub-category.
type PromotionSubCategory string

const (
	PromotionSubCategoryNone          PromotionSubCategory = ""
	PromotionSubCategoryEarlyBird     PromotionSubCategory = "EARLY_BIRD"
	PromotionSubCategoryLastMinute    PromotionSubCategory = "LAST_MINUTE"
	PromotionSubCategoryMobileRate    PromotionSubCategory = "MOBILE_RATE"
	PromotionSubCategoryCountryRate   PromotionSubCategory = "COUNTRY_RATE"
	PromotionSubCategoryExclusiveRate PromotionSubCategory = "EXCLUSIVE_RATE"
	PromotionSubCategoryDealOfDay     PromotionSubCategory = "DEAL_OF_DAY"
)

var validPromotionSubCategories = []PromotionSubCategory{
	PromotionSubCategoryNone,
	PromotionSubCategoryEarlyBird,
	PromotionSubCategoryLastMinute,
	PromotionSubCategoryMobileRate,
	PromotionSubCategoryCountryRate,
	PromotionSubCategoryExclusiveRate,
	PromotionSubCategoryDealOfDay,
}

// String implements fmt.Stringer.
func (c PromotionSubCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known PromotionSubCategory.
func (c PromotionSubCategory) IsValid() bool {
	for _, candidate := range validPromotionSubCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParsePromotionSubCategory converts raw input into a PromotionSubCategory.
func ParsePromotionSubCategory(value string) (PromotionSubCategory, error) {
	for _, candidate := range validPromotionSubCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion sub category %q", value)
}
