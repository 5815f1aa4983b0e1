package catalog

import (
	"strings"

	"go.uber.org/zap"
)

// Matches reports whether a description satisfies the keyword set:
// every MatchAll term present, no ExcludeAll term present, and at least
// one term of every MatchAny sub-group present. All comparisons are
// case-insensitive substring checks.
func (k KeywordSet) Matches(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range k.MatchAll {
		if !strings.Contains(desc, strings.ToLower(kw)) {
			return false
		}
	}
	for _, kw := range k.ExcludeAll {
		if strings.Contains(desc, strings.ToLower(kw)) {
			return false
		}
	}
	for _, group := range k.MatchAny {
		anyHit := false
		for _, kw := range group {
			if strings.Contains(desc, strings.ToLower(kw)) {
				anyHit = true
				break
			}
		}
		if !anyHit {
			return false
		}
	}
	return true
}

// MatchProductID resolves a free-text order description to a product id.
// Entries are evaluated in dataset order, not by priority; the first
// structural match wins. The second return is false when nothing
// matched and the caller must fall back.
func MatchProductID(description string, entries []ProductKeywordEntry) (int, bool) {
	for _, entry := range entries {
		if entry.Matches(description) {
			zap.S().Debugw("matched product", "product_id", entry.ProductID, "description", description)
			return entry.ProductID, true
		}
	}
	zap.S().Debugw("no product matched description", "description", description)
	return 0, false
}

// MatchProductionGroups returns the names of every production group
// whose keyword set matches the description. Tagging is non-exclusive:
// zero, one or many groups may apply.
func MatchProductionGroups(description string, groups []ProductionGroup) []string {
	var names []string
	for _, g := range groups {
		if g.Matches(description) {
			names = append(names, g.Name)
		}
	}
	return names
}
