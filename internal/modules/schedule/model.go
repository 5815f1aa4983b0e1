package schedule

import (
	"time"

	"github.com/printops/scheduler/internal/modules/routing"
)

// Request is an inbound scheduling request. Field names follow the MIS
// wire format. The request is never mutated; normalisation happens in a
// working copy inside the pipeline.
type Request struct {
	Description    string  `json:"description"`
	Quantity       int     `json:"misOrderQTY"`
	Kinds          int     `json:"kinds"`
	PrintType      int     `json:"printType"`
	Width          float64 `json:"preflightedWidth"`
	Height         float64 `json:"preflightedHeight"`
	Orientation    string  `json:"orientation"`
	OriginHub      string  `json:"misCurrentHub"`
	OriginHubID    int     `json:"misCurrentHubID"`
	DestState      string  `json:"misDeliversToState"`
	DestPostcode   string  `json:"misDeliversToPostcode"`
	OrderID        string  `json:"orderId,omitempty"`
	OrderNotes     string  `json:"orderNotes,omitempty"`
	CenterID       int     `json:"centerId,omitempty"`
	ExtraDays      int     `json:"additionalProductionDays,omitempty"`
	TimeOffsetHrs  int     `json:"timeOffsetHours,omitempty"`
}

// Cutoff status labels.
const (
	CutoffBefore = "Before Cutoff"
	CutoffAfter  = "After Cutoff"
)

// Response is the full scheduling result. DispatchDate is nil when the
// fallback product was used, signalling low confidence to the caller.
type Response struct {
	ProductID        int      `json:"productId"`
	ProductGroup     string   `json:"productGroup"`
	ProductCategory  string   `json:"productCategory"`
	ProductionHubs   []string `json:"productionHubs"`
	ProductionGroups []string `json:"productionGroups"`

	CutoffStatus        string   `json:"cutoffStatus"`
	ProductStartDays    []string `json:"productStartDays"`
	ProductCutoff       int      `json:"productCutoff"`
	DaysToProduceBase   int      `json:"daysToProduceBase"`
	FinishingDays       int      `json:"finishingDays"`
	TotalProductionDays int      `json:"totalProductionDays"`

	OrderPostcode       string           `json:"orderPostcode"`
	ChosenProductionHub string           `json:"chosenProductionHub"`
	HubTransferTo       int              `json:"hubTransferTo"`
	HubDecision         routing.Decision `json:"hubDecision"`

	StartDate         string  `json:"startDate"`
	AdjustedStartDate string  `json:"adjustedStartDate"`
	DispatchDate      *string `json:"dispatchDate"`

	GrainDirection string `json:"grainDirection"`
	GrainID        int    `json:"setGrainDirection"`
	OrderQuantity  int    `json:"orderQuantity"`
	OrderKinds     int    `json:"orderKinds"`
	TotalQuantity  int    `json:"totalQuantity"`

	ImposingAction       int    `json:"imposingAction"`
	PreflightProfileID   int    `json:"preflightProfileId"`
	PreflightProfileName string `json:"preflightProfileName"`

	SynergyPreflight      int `json:"synergyPreflight"`
	SynergyImpose         int `json:"synergyImpose"`
	EnableAutoHubTransfer int `json:"enableAutoHubTransfer"`

	ActualProcessingTime    time.Time  `json:"actualProcessingTime"`
	SimulatedProcessingTime *time.Time `json:"simulatedProcessingTime,omitempty"`
}
