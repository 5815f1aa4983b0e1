package rules

import "sort"

// Rule is the surface every prioritized rule variant shares, so that
// enabled/priority/date-window handling lives in one place instead of
// being re-probed per rule set.
type Rule interface {
	RuleID() string
	IsEnabled() bool
	RulePriority() int
	// Window returns the optional active-date bounds as ISO date
	// strings; empty means unbounded on that side.
	Window() (start, end string)
}

// SizeConstraint caps the dimensions a hub can produce. Pointers
// distinguish "not set" from zero; a constraint missing either bound is
// treated as passing.
type SizeConstraint struct {
	MaxWidth  *float64 `json:"max_width,omitempty"`
	MaxHeight *float64 `json:"max_height,omitempty"`
}

// OrderCriteria is the shared matching shape used by hub, imposing and
// preflight rules. Every field is optional; a criteria object with
// nothing set matches vacuously.
type OrderCriteria struct {
	MinQuantity          *int     `json:"min_quantity,omitempty"`
	MaxQuantity          *int     `json:"max_quantity,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	ExcludeKeywords      []string `json:"exclude_keywords,omitempty"`
	ProductIDs           []int    `json:"product_ids,omitempty"`
	ExcludeProductIDs    []int    `json:"exclude_product_ids,omitempty"`
	ProductGroups        []string `json:"product_groups,omitempty"`
	ExcludeProductGroups []string `json:"exclude_product_groups,omitempty"`
	PrintTypes           []int    `json:"print_types,omitempty"`
}

// Empty reports whether no sub-check is defined at all.
func (c *OrderCriteria) Empty() bool {
	if c == nil {
		return true
	}
	return c.MinQuantity == nil && c.MaxQuantity == nil &&
		len(c.Keywords) == 0 && len(c.ExcludeKeywords) == 0 &&
		len(c.ProductIDs) == 0 && len(c.ExcludeProductIDs) == 0 &&
		len(c.ProductGroups) == 0 && len(c.ExcludeProductGroups) == 0 &&
		len(c.PrintTypes) == 0
}

// HubRule can exclude one specific hub from producing an order. The
// rule only ever fires against the hub named in Hub.
type HubRule struct {
	ID          string          `json:"id"`
	Description string          `json:"description,omitempty"`
	Hub         string          `json:"hub_id"`
	Priority    int             `json:"priority"`
	Enabled     bool            `json:"enabled"`
	Size        *SizeConstraint `json:"size_constraints,omitempty"`
	Criteria    *OrderCriteria  `json:"order_criteria,omitempty"`
	StartDate   string          `json:"start_date,omitempty"`
	EndDate     string          `json:"end_date,omitempty"`
}

func (r HubRule) RuleID() string         { return r.ID }
func (r HubRule) IsEnabled() bool        { return r.Enabled }
func (r HubRule) RulePriority() int      { return r.Priority }
func (r HubRule) Window() (string, string) { return r.StartDate, r.EndDate }

// Imposing action codes.
const (
	ImposeNone   = 0
	ImposeAuto   = 1
	ImposeManual = 2
)

// ImposingRule resolves the imposition action for matching orders.
type ImposingRule struct {
	ID          string         `json:"id"`
	Description string         `json:"description,omitempty"`
	Priority    int            `json:"priority"`
	Enabled     bool           `json:"enabled"`
	Criteria    *OrderCriteria `json:"order_criteria,omitempty"`
	StartDate   string         `json:"start_date,omitempty"`
	EndDate     string         `json:"end_date,omitempty"`
	Action      int            `json:"imposing_action"`
}

func (r ImposingRule) RuleID() string         { return r.ID }
func (r ImposingRule) IsEnabled() bool        { return r.Enabled }
func (r ImposingRule) RulePriority() int      { return r.Priority }
func (r ImposingRule) Window() (string, string) { return r.StartDate, r.EndDate }

// PreflightRule resolves the preflight profile for matching orders.
type PreflightRule struct {
	ID          string         `json:"id"`
	Description string         `json:"description,omitempty"`
	Priority    int            `json:"priority"`
	Enabled     bool           `json:"enabled"`
	Criteria    *OrderCriteria `json:"order_criteria,omitempty"`
	StartDate   string         `json:"start_date,omitempty"`
	EndDate     string         `json:"end_date,omitempty"`
	ProfileID   int            `json:"preflight_profile_id"`
}

func (r PreflightRule) RuleID() string         { return r.ID }
func (r PreflightRule) IsEnabled() bool        { return r.Enabled }
func (r PreflightRule) RulePriority() int      { return r.Priority }
func (r PreflightRule) Window() (string, string) { return r.StartDate, r.EndDate }

// RuleConditions gate a finishing keyword rule on structured order
// attributes beyond its keywords.
type RuleConditions struct {
	QuantityLessThan       *int           `json:"quantity_less_than,omitempty"`
	QuantityGreaterThan    *int           `json:"quantity_greater_than,omitempty"`
	QuantityGreaterOrEqual *int           `json:"quantity_greater_or_equal,omitempty"`
	ProductIDEqual         *int           `json:"product_id_equal,omitempty"`
	ProductIDNotEqual      *int           `json:"product_id_not_equal,omitempty"`
	ProductIDIn            []int          `json:"product_id_in,omitempty"`
	ProductGroupNotContains string        `json:"product_group_not_contains,omitempty"`
	HubOverrides           map[string]int `json:"hub_overrides,omitempty"`
}

// KeywordRule adds finishing days when its keywords match the order
// description and its conditions hold. Matching rules accumulate; they
// are not first-match-wins.
type KeywordRule struct {
	ID              string          `json:"id"`
	Description     string          `json:"description,omitempty"`
	Keywords        []string        `json:"keywords,omitempty"`
	ExcludeKeywords []string        `json:"exclude_keywords,omitempty"`
	MatchType       string          `json:"match_type,omitempty"` // "any" (default) or "all"
	CaseSensitive   bool            `json:"case_sensitive,omitempty"`
	AddDays         int             `json:"add_days"`
	Conditions      *RuleConditions `json:"conditions,omitempty"`
	Enabled         bool            `json:"enabled"`
}

// CenterRule adds (or removes, negative deltas are allowed) finishing
// days for orders from one specific center. Only keyword exclusion
// applies; there is no required-keyword matching.
type CenterRule struct {
	ID              string   `json:"id"`
	Description     string   `json:"description,omitempty"`
	CenterID        int      `json:"center_id"`
	ExcludeKeywords []string `json:"exclude_keywords,omitempty"`
	AddDays         int      `json:"add_days"`
	Enabled         bool     `json:"enabled"`
}

// FinishingRuleSet is the finishing rules dataset.
type FinishingRuleSet struct {
	KeywordRules []KeywordRule `json:"keyword_rules"`
	CenterRules  []CenterRule  `json:"center_rules"`
}

// SortByPriority orders rules highest priority first, in place.
func SortByPriority[R Rule](rs []R) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].RulePriority() > rs[j].RulePriority()
	})
}
