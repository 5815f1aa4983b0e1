package rules

import (
	"strings"

	"go.uber.org/zap"
)

// FinishingDays accumulates the extra production days an order needs on
// top of the product's base days. Keyword rules contribute their day
// delta (or a per-hub override for the order's origin hub); center rules
// contribute when the order carries a matching center id and none of the
// rule's excluded keywords appear; extraDays is the manually requested
// addition from the order itself. Center deltas may be negative and are
// allowed to reduce the total.
func FinishingDays(set FinishingRuleSet, f OrderFacts, extraDays int) int {
	days := 0

	for _, rule := range set.KeywordRules {
		if !rule.Enabled {
			continue
		}
		if !conditionsMet(rule.Conditions, f) {
			continue
		}
		if !MatchKeywords(rule.Keywords, rule.ExcludeKeywords, f.Description, rule.MatchType, rule.CaseSensitive) {
			continue
		}
		add := rule.AddDays
		if rule.Conditions != nil && rule.Conditions.HubOverrides != nil {
			if hubDays, ok := rule.Conditions.HubOverrides[strings.ToLower(f.OriginHub)]; ok {
				add = hubDays
			}
		}
		zap.S().Debugw("finishing rule applied", "rule", rule.ID, "add_days", add)
		days += add
	}

	if f.CenterID != 0 {
		for _, rule := range set.CenterRules {
			if !rule.Enabled || rule.CenterID != f.CenterID {
				continue
			}
			if len(rule.ExcludeKeywords) > 0 &&
				anyKeywordIn(rule.ExcludeKeywords, strings.ToLower(f.Description)) {
				continue
			}
			zap.S().Debugw("center rule applied", "rule", rule.ID, "add_days", rule.AddDays)
			days += rule.AddDays
		}
	}

	if extraDays > 0 {
		zap.S().Debugw("manual extra production days added", "days", extraDays)
		days += extraDays
	}
	return days
}

func conditionsMet(cond *RuleConditions, f OrderFacts) bool {
	if cond == nil {
		return true
	}
	if cond.QuantityLessThan != nil && f.Quantity >= *cond.QuantityLessThan {
		return false
	}
	if cond.QuantityGreaterThan != nil && f.Quantity <= *cond.QuantityGreaterThan {
		return false
	}
	if cond.QuantityGreaterOrEqual != nil && f.Quantity < *cond.QuantityGreaterOrEqual {
		return false
	}
	if cond.ProductIDEqual != nil && f.ProductID != *cond.ProductIDEqual {
		return false
	}
	if cond.ProductIDNotEqual != nil && f.ProductID == *cond.ProductIDNotEqual {
		return false
	}
	if len(cond.ProductIDIn) > 0 && !containsInt(cond.ProductIDIn, f.ProductID) {
		return false
	}
	if cond.ProductGroupNotContains != "" &&
		strings.Contains(strings.ToLower(f.ProductGroup), strings.ToLower(cond.ProductGroupNotContains)) {
		return false
	}
	return true
}
