package rules

import (
	"time"

	"go.uber.org/zap"
)

// ImposingAction resolves the imposition action code for an order: the
// highest-priority enabled, date-valid rule whose criteria match wins.
// Criteria are evaluated against the resolved product id and group, not
// raw order fields. Defaults to ImposeNone when nothing matches.
func ImposingAction(ruleList []ImposingRule, f OrderFacts, today time.Time) int {
	sorted := make([]ImposingRule, len(ruleList))
	copy(sorted, ruleList)
	SortByPriority(sorted)

	for _, rule := range sorted {
		if !rule.Enabled || !WindowValid(rule, today) {
			continue
		}
		if rule.Criteria.Matches(f) {
			zap.S().Debugw("imposing rule matched", "rule", rule.ID, "action", rule.Action)
			return rule.Action
		}
	}
	return ImposeNone
}
