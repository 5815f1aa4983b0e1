package rules

import (
	"time"

	"go.uber.org/zap"

	"github.com/printops/scheduler/internal/modules/catalog"
)

// PreflightAction resolves the preflight profile for an order: the
// highest-priority enabled, date-valid rule whose criteria match picks
// the profile; the profile's human name comes from the profile catalog.
// Defaults to profile 0 / "NoPreflight" when nothing matches or the
// chosen profile is unknown.
func PreflightAction(ruleList []PreflightRule, profiles []catalog.PreflightProfile, f OrderFacts, today time.Time) catalog.PreflightProfile {
	sorted := make([]PreflightRule, len(ruleList))
	copy(sorted, ruleList)
	SortByPriority(sorted)

	for _, rule := range sorted {
		if !rule.Enabled || !WindowValid(rule, today) {
			continue
		}
		if !rule.Criteria.Matches(f) {
			continue
		}
		for _, p := range profiles {
			if p.ID == rule.ProfileID {
				zap.S().Debugw("preflight rule matched", "rule", rule.ID, "profile", p.Name)
				return p
			}
		}
		zap.S().Warnw("preflight rule names unknown profile, using default",
			"rule", rule.ID, "profile_id", rule.ProfileID)
		return catalog.NoPreflightProfile
	}
	return catalog.NoPreflightProfile
}
