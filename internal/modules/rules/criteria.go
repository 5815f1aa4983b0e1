package rules

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/printops/scheduler/internal/calendar"
)

// OrderFacts are the resolved order attributes rules match against.
// They are produced once by the orchestrator after product matching and
// normalisation, so every rule set sees identical inputs.
type OrderFacts struct {
	Description  string
	Quantity     int // unit quantity × kinds
	ProductID    int
	ProductGroup string
	PrintType    int
	Width        float64
	Height       float64
	OriginHub    string
	CenterID     int
}

// Matches evaluates every defined sub-check against the facts with AND
// semantics. Unset fields pass vacuously; a criteria with no fields set
// always matches.
func (c *OrderCriteria) Matches(f OrderFacts) bool {
	if c.Empty() {
		return true
	}
	if c.MinQuantity != nil && f.Quantity < *c.MinQuantity {
		return false
	}
	if c.MaxQuantity != nil && f.Quantity > *c.MaxQuantity {
		return false
	}
	desc := strings.ToLower(f.Description)
	if len(c.Keywords) > 0 && !anyKeywordIn(c.Keywords, desc) {
		return false
	}
	if len(c.ExcludeKeywords) > 0 && anyKeywordIn(c.ExcludeKeywords, desc) {
		return false
	}
	if len(c.ProductIDs) > 0 && !containsInt(c.ProductIDs, f.ProductID) {
		return false
	}
	if len(c.ExcludeProductIDs) > 0 && containsInt(c.ExcludeProductIDs, f.ProductID) {
		return false
	}
	if len(c.ProductGroups) > 0 && !containsFold(c.ProductGroups, f.ProductGroup) {
		return false
	}
	if len(c.ExcludeProductGroups) > 0 && containsFold(c.ExcludeProductGroups, f.ProductGroup) {
		return false
	}
	if len(c.PrintTypes) > 0 && !containsInt(c.PrintTypes, f.PrintType) {
		return false
	}
	return true
}

// Fits reports whether the dimensions fit the constraint in either
// orientation. A constraint missing one or both bounds passes; a
// partially specified constraint never blocks an order.
func (sc *SizeConstraint) Fits(width, height float64) bool {
	if sc == nil || sc.MaxWidth == nil || sc.MaxHeight == nil {
		return true
	}
	maxW, maxH := *sc.MaxWidth, *sc.MaxHeight
	if width <= maxW && height <= maxH {
		return true
	}
	return width <= maxH && height <= maxW
}

// WindowValid reports whether the rule is active today. Rules without
// date bounds are always active. Unparseable dates make the rule
// invalid (fail closed) with a warning rather than an error.
func WindowValid(r Rule, today time.Time) bool {
	startStr, endStr := r.Window()
	if startStr == "" && endStr == "" {
		return true
	}
	if startStr != "" {
		start, err := time.ParseInLocation(calendar.ISODate, startStr, today.Location())
		if err != nil {
			zap.S().Warnw("rule has invalid start date, treating as inactive",
				"rule", r.RuleID(), "start_date", startStr)
			return false
		}
		if today.Before(start) {
			return false
		}
	}
	if endStr != "" {
		end, err := time.ParseInLocation(calendar.ISODate, endStr, today.Location())
		if err != nil {
			zap.S().Warnw("rule has invalid end date, treating as inactive",
				"rule", r.RuleID(), "end_date", endStr)
			return false
		}
		if today.After(end) {
			return false
		}
	}
	return true
}

// MatchKeywords evaluates a finishing-style keyword rule: any exclusion
// hit fails immediately, then required keywords are checked per
// matchType ("all" requires every keyword, anything else means "any").
func MatchKeywords(keywords, exclude []string, description, matchType string, caseSensitive bool) bool {
	desc := description
	if !caseSensitive {
		desc = strings.ToLower(description)
	}
	for _, kw := range exclude {
		if !caseSensitive {
			kw = strings.ToLower(kw)
		}
		if strings.Contains(desc, kw) {
			return false
		}
	}
	if len(keywords) == 0 {
		return true
	}
	if matchType == "all" {
		for _, kw := range keywords {
			if !caseSensitive {
				kw = strings.ToLower(kw)
			}
			if !strings.Contains(desc, kw) {
				return false
			}
		}
		return true
	}
	for _, kw := range keywords {
		if !caseSensitive {
			kw = strings.ToLower(kw)
		}
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

func anyKeywordIn(keywords []string, lowerDesc string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerDesc, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	for _, x := range list {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}
