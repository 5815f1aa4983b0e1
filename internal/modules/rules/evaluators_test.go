package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/printops/scheduler/internal/modules/catalog"
)

var evalToday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestImposingAction(t *testing.T) {
	ruleList := []ImposingRule{
		{ID: "low", Priority: 1, Enabled: true, Action: ImposeAuto},
		{ID: "high", Priority: 10, Enabled: true, Action: ImposeManual,
			Criteria: &OrderCriteria{Keywords: []string{"die cut"}}},
	}

	t.Run("highest priority match wins", func(t *testing.T) {
		f := OrderFacts{Description: "Die Cut Stickers"}
		assert.Equal(t, ImposeManual, ImposingAction(ruleList, f, evalToday))
	})

	t.Run("falls through to lower priority", func(t *testing.T) {
		f := OrderFacts{Description: "Flyers"}
		assert.Equal(t, ImposeAuto, ImposingAction(ruleList, f, evalToday))
	})

	t.Run("default is no imposition", func(t *testing.T) {
		assert.Equal(t, ImposeNone, ImposingAction(nil, OrderFacts{}, evalToday))
	})

	t.Run("disabled and expired rules are skipped", func(t *testing.T) {
		expired := []ImposingRule{
			{ID: "off", Priority: 5, Enabled: false, Action: ImposeManual},
			{ID: "past", Priority: 4, Enabled: true, Action: ImposeManual,
				EndDate: "2025-05-31"},
		}
		assert.Equal(t, ImposeNone, ImposingAction(expired, OrderFacts{}, evalToday))
	})

	t.Run("input order does not matter", func(t *testing.T) {
		reversed := []ImposingRule{ruleList[1], ruleList[0]}
		f := OrderFacts{Description: "Die Cut Stickers"}
		assert.Equal(t, ImposeManual, ImposingAction(reversed, f, evalToday))
		// the caller's slice is left untouched
		assert.Equal(t, "high", reversed[0].ID)
	})
}

func TestPreflightAction(t *testing.T) {
	profiles := []catalog.PreflightProfile{
		{ID: 1, Name: "StandardCMYK"},
		{ID: 2, Name: "WideFormat"},
	}
	ruleList := []PreflightRule{
		{ID: "posters", Priority: 5, Enabled: true, ProfileID: 2,
			Criteria: &OrderCriteria{Keywords: []string{"poster"}}},
		{ID: "everything", Priority: 1, Enabled: true, ProfileID: 1},
	}

	t.Run("matching rule resolves its profile", func(t *testing.T) {
		got := PreflightAction(ruleList, profiles, OrderFacts{Description: "A1 Poster"}, evalToday)
		assert.Equal(t, "WideFormat", got.Name)
		assert.Equal(t, 2, got.ID)
	})

	t.Run("catch-all rule applies otherwise", func(t *testing.T) {
		got := PreflightAction(ruleList, profiles, OrderFacts{Description: "Flyers"}, evalToday)
		assert.Equal(t, "StandardCMYK", got.Name)
	})

	t.Run("no rules means the no-preflight profile", func(t *testing.T) {
		got := PreflightAction(nil, profiles, OrderFacts{}, evalToday)
		assert.Equal(t, catalog.NoPreflightProfile, got)
	})

	t.Run("unknown profile id falls back to default", func(t *testing.T) {
		bad := []PreflightRule{{ID: "broken", Priority: 9, Enabled: true, ProfileID: 77}}
		got := PreflightAction(bad, profiles, OrderFacts{}, evalToday)
		assert.Equal(t, catalog.NoPreflightProfile, got)
	})
}
