package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinishingDaysKeywordRules(t *testing.T) {
	set := FinishingRuleSet{
		KeywordRules: []KeywordRule{
			{
				ID:       "laminate",
				Keywords: []string{"laminat", "celloglaze"},
				AddDays:  1,
				Enabled:  true,
			},
			{
				ID:       "bulk",
				Keywords: []string{"offset"},
				AddDays:  2,
				Conditions: &RuleConditions{
					QuantityGreaterThan: intPtr(10000),
				},
				Enabled: true,
			},
			{
				ID:       "disabled",
				Keywords: []string{"laminat"},
				AddDays:  5,
				Enabled:  false,
			},
		},
	}

	t.Run("matching rule adds its days", func(t *testing.T) {
		f := OrderFacts{Description: "Business Cards Matt Laminated", Quantity: 500}
		assert.Equal(t, 1, FinishingDays(set, f, 0))
	})

	t.Run("quantity condition gates the rule", func(t *testing.T) {
		f := OrderFacts{Description: "Offset Flyers", Quantity: 10001}
		assert.Equal(t, 2, FinishingDays(set, f, 0))

		f.Quantity = 10000
		assert.Equal(t, 0, FinishingDays(set, f, 0))
	})

	t.Run("matching rules accumulate", func(t *testing.T) {
		f := OrderFacts{Description: "Offset Flyers Celloglazed", Quantity: 20000}
		assert.Equal(t, 3, FinishingDays(set, f, 0))
	})

	t.Run("disabled rules never fire", func(t *testing.T) {
		f := OrderFacts{Description: "Laminated Menus", Quantity: 100}
		assert.Equal(t, 1, FinishingDays(set, f, 0))
	})
}

func TestFinishingDaysHubOverride(t *testing.T) {
	set := FinishingRuleSet{
		KeywordRules: []KeywordRule{{
			ID:       "diecut",
			Keywords: []string{"die cut"},
			AddDays:  2,
			Conditions: &RuleConditions{
				HubOverrides: map[string]int{"qld": 3},
			},
			Enabled: true,
		}},
	}
	f := OrderFacts{Description: "Die Cut Stickers", Quantity: 100, OriginHub: "vic"}
	assert.Equal(t, 2, FinishingDays(set, f, 0))

	f.OriginHub = "QLD"
	assert.Equal(t, 3, FinishingDays(set, f, 0))
}

func TestFinishingDaysCenterRules(t *testing.T) {
	set := FinishingRuleSet{
		CenterRules: []CenterRule{
			{ID: "slow-center", CenterID: 42, AddDays: 1, Enabled: true},
			{ID: "fast-center", CenterID: 7, AddDays: -1, Enabled: true,
				ExcludeKeywords: []string{"urgent"}},
		},
	}

	t.Run("only the order's center applies", func(t *testing.T) {
		f := OrderFacts{Description: "Flyers", CenterID: 42}
		assert.Equal(t, 1, FinishingDays(set, f, 0))
	})

	t.Run("negative deltas reduce the total", func(t *testing.T) {
		f := OrderFacts{Description: "Flyers", CenterID: 7}
		assert.Equal(t, -1, FinishingDays(set, f, 0))
	})

	t.Run("excluded keyword cancels the center rule", func(t *testing.T) {
		f := OrderFacts{Description: "Urgent Flyers", CenterID: 7}
		assert.Equal(t, 0, FinishingDays(set, f, 0))
	})

	t.Run("no center id means no center rules", func(t *testing.T) {
		f := OrderFacts{Description: "Flyers"}
		assert.Equal(t, 0, FinishingDays(set, f, 0))
	})
}

func TestFinishingDaysExtraDays(t *testing.T) {
	set := FinishingRuleSet{}
	f := OrderFacts{Description: "Flyers"}

	assert.Equal(t, 2, FinishingDays(set, f, 2))
	assert.Equal(t, 0, FinishingDays(set, f, 0))
	// negative manual requests are ignored
	assert.Equal(t, 0, FinishingDays(set, f, -3))
}

func TestConditionsMet(t *testing.T) {
	f := OrderFacts{Quantity: 250, ProductID: 6, ProductGroup: "Postcards"}

	assert.True(t, conditionsMet(nil, f))
	assert.True(t, conditionsMet(&RuleConditions{QuantityLessThan: intPtr(300)}, f))
	assert.False(t, conditionsMet(&RuleConditions{QuantityLessThan: intPtr(250)}, f))
	assert.True(t, conditionsMet(&RuleConditions{QuantityGreaterOrEqual: intPtr(250)}, f))
	assert.False(t, conditionsMet(&RuleConditions{QuantityGreaterThan: intPtr(250)}, f))
	assert.True(t, conditionsMet(&RuleConditions{ProductIDEqual: intPtr(6)}, f))
	assert.False(t, conditionsMet(&RuleConditions{ProductIDNotEqual: intPtr(6)}, f))
	assert.True(t, conditionsMet(&RuleConditions{ProductIDIn: []int{5, 6, 7}}, f))
	assert.False(t, conditionsMet(&RuleConditions{ProductIDIn: []int{8, 9}}, f))
	assert.False(t, conditionsMet(&RuleConditions{ProductGroupNotContains: "postcard"}, f))
	assert.True(t, conditionsMet(&RuleConditions{ProductGroupNotContains: "poster"}, f))
}
