package pricing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

// Removal records a promotion pruned by a conflict rule.
type Removal struct {
	Promotion Promotion `json:"promotion"`
	Rule      string    `json:"rule"`
	KeptID    uuid.UUID `json:"kept_id"`
	Reason    string    `json:"reason"`
}

// Resolution is the outcome of running the conflict rules over one channel's promotions.
type Resolution struct {
	Resolved    []Promotion `json:"resolved"`
	Removed     []Removal   `json:"removed"`
	HadConflict bool        `json:"had_conflict"`
}

const (
	RuleTimingExclusivity    = "timing-exclusivity"
	RuleRateBasisExclusivity = "rate-basis-exclusivity"
	RuleExclusiveRate        = "exclusive-rate-dominance"
	RuleCampaignDominance    = "campaign-dominance"
)

// conflictRule pairs a predicate with the pruning it triggers. Rules run in slice order and
// each sees the survivors of the previous one.
type conflictRule struct {
	name    string
	applies func(promos []Promotion) bool
	prune   func(promos []Promotion, tieBreak enums.TieBreak) ([]Promotion, []Removal)
}

var conflictRules = []conflictRule{
	{
		name:    RuleTimingExclusivity,
		applies: hasBoth(enums.PromotionSubCategoryEarlyBird, enums.PromotionSubCategoryLastMinute),
		prune:   pruneAlternates(RuleTimingExclusivity, "timing exclusivity", enums.PromotionSubCategoryEarlyBird, enums.PromotionSubCategoryLastMinute),
	},
	{
		name:    RuleRateBasisExclusivity,
		applies: hasBoth(enums.PromotionSubCategoryMobileRate, enums.PromotionSubCategoryCountryRate),
		prune:   pruneAlternates(RuleRateBasisExclusivity, "rate-basis exclusivity", enums.PromotionSubCategoryMobileRate, enums.PromotionSubCategoryCountryRate),
	},
	{
		name:    RuleExclusiveRate,
		applies: hasExclusiveRateWithOthers,
		prune:   pruneForExclusiveRate,
	},
	{
		name:    RuleCampaignDominance,
		applies: hasCampaignConflict,
		prune:   pruneForCampaign,
	},
}

// ResolveConflicts applies the exclusivity and dominance rules to the promotions active on
// a channel. The input order is the catalog order and drives every tie-break.
func ResolveConflicts(promos []Promotion, tieBreak enums.TieBreak) Resolution {
	current := make([]Promotion, len(promos))
	copy(current, promos)

	result := Resolution{}
	for _, rule := range conflictRules {
		if !rule.applies(current) {
			continue
		}
		kept, removed := rule.prune(current, tieBreak)
		if len(removed) == 0 {
			continue
		}
		current = kept
		result.Removed = append(result.Removed, removed...)
		result.HadConflict = true
	}
	result.Resolved = current
	return result
}

func hasBoth(a, b enums.PromotionSubCategory) func([]Promotion) bool {
	return func(promos []Promotion) bool {
		var seenA, seenB bool
		for _, p := range promos {
			switch p.SubCategory {
			case a:
				seenA = true
			case b:
				seenB = true
			}
		}
		return seenA && seenB
	}
}

// pruneAlternates keeps the winning sub-category of a mutually exclusive pair and drops
// every promotion of the other one.
func pruneAlternates(rule, label string, a, b enums.PromotionSubCategory) func([]Promotion, enums.TieBreak) ([]Promotion, []Removal) {
	return func(promos []Promotion, tieBreak enums.TieBreak) ([]Promotion, []Removal) {
		candidates := filter(promos, func(p Promotion) bool {
			return p.SubCategory == a || p.SubCategory == b
		})
		winner := pickWinner(candidates, tieBreak)
		loser := a
		if winner.SubCategory == a {
			loser = b
		}

		kept := make([]Promotion, 0, len(promos))
		var removed []Removal
		for _, p := range promos {
			if p.SubCategory != loser {
				kept = append(kept, p)
				continue
			}
			removed = append(removed, Removal{
				Promotion: p,
				Rule:      rule,
				KeptID:    winner.ID,
				Reason:    fmt.Sprintf("%s removed: %s with %s", describePromotion(p), label, describePromotion(winner)),
			})
		}
		return kept, removed
	}
}

func hasExclusiveRateWithOthers(promos []Promotion) bool {
	if len(promos) < 2 {
		return false
	}
	for _, p := range promos {
		if p.SubCategory == enums.PromotionSubCategoryExclusiveRate {
			return true
		}
	}
	return false
}

func pruneForExclusiveRate(promos []Promotion, tieBreak enums.TieBreak) ([]Promotion, []Removal) {
	exclusives := filter(promos, func(p Promotion) bool {
		return p.SubCategory == enums.PromotionSubCategoryExclusiveRate
	})
	winner := pickWinner(exclusives, tieBreak)
	return keepOnly(promos, winner, RuleExclusiveRate, "suppressed by exclusive rate", func(Promotion) bool { return true })
}

func hasCampaignConflict(promos []Promotion) bool {
	campaigns, targeted := 0, 0
	for _, p := range promos {
		switch p.Group {
		case enums.PromotionGroupCampaign:
			campaigns++
		case enums.PromotionGroupTargeted:
			targeted++
		}
	}
	return campaigns > 1 || (campaigns == 1 && targeted > 0)
}

// pruneForCampaign drops targeted promotions while a campaign runs and keeps only the
// largest campaign. The tie-break setting does not apply here: campaigns always compete
// on percent, catalog order settles exact ties.
func pruneForCampaign(promos []Promotion, _ enums.TieBreak) ([]Promotion, []Removal) {
	campaigns := filter(promos, func(p Promotion) bool {
		return p.Group == enums.PromotionGroupCampaign
	})
	winner := pickWinner(campaigns, enums.TieBreakHighestDiscount)
	return keepOnly(promos, winner, RuleCampaignDominance, "suppressed by campaign", func(p Promotion) bool {
		return p.Group == enums.PromotionGroupCampaign || p.Group == enums.PromotionGroupTargeted
	})
}

// keepOnly removes every promotion matched by target except the winner.
func keepOnly(promos []Promotion, winner Promotion, rule, label string, target func(Promotion) bool) ([]Promotion, []Removal) {
	kept := make([]Promotion, 0, len(promos))
	var removed []Removal
	winnerKept := false
	for _, p := range promos {
		if !winnerKept && p.ID == winner.ID {
			kept = append(kept, p)
			winnerKept = true
			continue
		}
		if !target(p) {
			kept = append(kept, p)
			continue
		}
		removed = append(removed, Removal{
			Promotion: p,
			Rule:      rule,
			KeptID:    winner.ID,
			Reason:    fmt.Sprintf("%s removed: %s %s", describePromotion(p), label, describePromotion(winner)),
		})
	}
	return kept, removed
}

// pickWinner returns the surviving candidate. candidates must not be empty.
func pickWinner(candidates []Promotion, tieBreak enums.TieBreak) Promotion {
	winner := candidates[0]
	if tieBreak != enums.TieBreakHighestDiscount {
		return winner
	}
	for _, p := range candidates[1:] {
		if p.DiscountPercent.GreaterThan(winner.DiscountPercent) {
			winner = p
		}
	}
	return winner
}

func filter(promos []Promotion, keep func(Promotion) bool) []Promotion {
	out := make([]Promotion, 0, len(promos))
	for _, p := range promos {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func describePromotion(p Promotion) string {
	label := string(p.SubCategory)
	if label == "" {
		label = string(p.Group)
	}
	return fmt.Sprintf("%s %q (%s%%)", label, p.Name, p.DiscountPercent.String())
}
