package catalog

import (
	"github.com/printops/scheduler/internal/calendar"
)

// Product is a schedulable product class: which hubs may produce it, the
// weekdays a run may start, the order cutoff hour and the base length of
// a production run.
type Product struct {
	ID                    int                     `json:"product_id"`
	Group                 string                  `json:"product_group"`
	Category              string                  `json:"product_category"`
	ProductionHubs        []string                `json:"production_hubs"`
	StartDays             []string                `json:"start_days"`
	CutoffHour            int                     `json:"cutoff"`
	DaysToProduce         int                     `json:"days_to_produce"`
	RunDateOverrides      []calendar.DateOverride `json:"modified_run_dates,omitempty"`
	SynergyPreflight      int                     `json:"synergy_preflight"`
	SynergyImpose         int                     `json:"synergy_impose"`
	EnableAutoHubTransfer int                     `json:"enable_auto_hub_transfer"`
	OffsetOnly            string                  `json:"offset_only,omitempty"`
}

// Hub is one production facility. NextBest is the ordered fallback list
// consulted when this hub (or the state it serves) cannot produce an
// order; ClosedDates are hub-specific non-production days in ISO format.
type Hub struct {
	Name        string   `json:"hub"`
	ID          int      `json:"hub_id"`
	State       string   `json:"state"`
	NextBest    []string `json:"next_best"`
	Timezone    string   `json:"timezone"`
	ClosedDates []string `json:"closed_dates,omitempty"`
}

// KeywordSet is the shared three-group keyword shape used for product
// identification and production-group tagging. MatchAll terms must all
// appear, ExcludeAll terms must all be absent, and each MatchAny
// sub-group must contribute at least one present term.
type KeywordSet struct {
	MatchAll   []string   `json:"match_all,omitempty"`
	ExcludeAll []string   `json:"exclude_all,omitempty"`
	MatchAny   [][]string `json:"match_any,omitempty"`
}

// ProductKeywordEntry maps a free-text description onto a product id.
// Entries are evaluated in dataset order; the first structural match
// wins.
type ProductKeywordEntry struct {
	ProductID int `json:"product_id"`
	KeywordSet
}

// ProductionGroup tags orders with a human-facing category label.
// Unlike product matching, group tagging is non-exclusive.
type ProductionGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	KeywordSet
}

// PreflightProfile names a preflight configuration. Profile 0 is
// reserved for "no preflight".
type PreflightProfile struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PostcodeOverride forces orders delivered into a postcode range to a
// specific hub. Postcodes holds comma-separated tokens, each either an
// exact 4-digit code or a "start-end" numeric range.
type PostcodeOverride struct {
	Postcodes string `json:"postcodes"`
	HubName   string `json:"hub_name"`
	HubID     int    `json:"hub_id"`
}

// NoPreflightProfile is returned whenever no preflight rule matches or
// the profile catalog cannot be read.
var NoPreflightProfile = PreflightProfile{ID: 0, Name: "NoPreflight"}

// FallbackProductID marks an order whose description matched no keyword
// entry. It is deliberately distinguishable in scheduling output: the
// orchestrator nulls the dispatch date and disables auto hub transfer
// when this product is used.
const FallbackProductID = 99

// FallbackProduct returns the schedule-anyway product used for unmatched
// descriptions.
func FallbackProduct() Product {
	return Product{
		ID:                    FallbackProductID,
		Group:                 "No Group Found",
		Category:              "Unmatched Product",
		ProductionHubs:        []string{"vic"},
		StartDays:             []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		CutoffHour:            12,
		DaysToProduce:         2,
		SynergyPreflight:      0,
		SynergyImpose:         0,
		EnableAutoHubTransfer: 0,
	}
}
