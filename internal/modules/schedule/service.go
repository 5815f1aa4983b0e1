package schedule

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/printops/scheduler/internal/calendar"
	"github.com/printops/scheduler/internal/events"
	"github.com/printops/scheduler/internal/metrics"
	"github.com/printops/scheduler/internal/modules/catalog"
	"github.com/printops/scheduler/internal/modules/routing"
	"github.com/printops/scheduler/internal/modules/rules"
)

const digitalPrintType = 2

// Service schedules orders. A nil response with a nil error means the
// order could not be scheduled at all; the handler turns that into a
// transport error.
type Service interface {
	Schedule(ctx context.Context, req Request) (*Response, error)
}

type service struct {
	catalogRepo catalog.Repository
	rulesRepo   rules.Repository
	broker      events.Broker
	defaultTZ   string
	now         func() time.Time
}

func NewService(catalogRepo catalog.Repository, rulesRepo rules.Repository, broker events.Broker, defaultTZ string) Service {
	return &service{
		catalogRepo: catalogRepo,
		rulesRepo:   rulesRepo,
		broker:      broker,
		defaultTZ:   defaultTZ,
		now:         time.Now,
	}
}

// Schedule runs the full pipeline: normalisation, product matching,
// hub selection, run-date and cutoff resolution, finishing days, the
// business-day walk, and imposing/preflight resolution. Reference data
// is loaded fresh per call so rule edits apply immediately. Catalog
// load failures degrade to empty rule sets or the fallback product
// rather than failing the call.
func (s *service) Schedule(ctx context.Context, req Request) (*Response, error) {
	hubs, err := s.catalogRepo.Hubs(ctx)
	if err != nil {
		zap.S().Warnw("hub catalog unavailable, using defaults", "err", err)
	}

	// ── Normalisation ──
	postcode := req.DestPostcode
	if postcode == "" {
		postcode = "0000"
	}
	originHub, originHubID := catalog.ResolveHubDetails(req.OriginHub, req.OriginHubID, hubs)

	destState := strings.ToLower(req.DestState)
	switch destState {
	case "sa", "tas":
		zap.S().Debugw("state remap", "from", destState, "to", "vic")
		destState = "vic"
	case "act":
		zap.S().Debugw("state remap", "from", destState, "to", "nsw")
		destState = "nsw"
	}
	if originHub == "nqld" && destState == "qld" {
		zap.S().Debugw("nqld origin keeps qld delivery local")
		destState = "nqld"
	}

	if overrides, err := s.catalogRepo.PostcodeOverrides(ctx); err == nil {
		if o, ok := LookupHubByPostcode(postcode, overrides); ok {
			zap.S().Debugw("postcode override", "postcode", postcode, "hub", o.HubName)
			destState = strings.ToLower(o.HubName)
		}
	} else {
		zap.S().Warnw("postcode overrides unavailable", "err", err)
	}

	// ── Description augmentation ──
	description := req.Description
	printType := req.PrintType
	isBC := catalog.IsBusinessCardSize(req.Width, req.Height)
	if isBC && !strings.Contains(strings.ToLower(description), "bc") {
		description += " BC"
	}
	lower := strings.ToLower(description)
	if strings.Contains(lower, "premium uncoated") && !strings.Contains(lower, "digital") {
		description += " Digital"
	}
	if strings.Contains(lower, "premium uncoated") && strings.Contains(lower, "bc") {
		printType = digitalPrintType
	}

	// ── Product matching ──
	product, usedFallback := s.matchProduct(ctx, description)
	if usedFallback {
		metrics.FallbackProducts.Inc()
	}

	var productionGroups []string
	if groups, err := s.catalogRepo.ProductionGroups(ctx); err == nil {
		productionGroups = catalog.MatchProductionGroups(description, groups)
	} else {
		zap.S().Warnw("production groups unavailable", "err", err)
	}

	grainLabel, grainID := catalog.DetermineGrain(req.Orientation, req.Width, req.Height, description)

	// center rules historically key on the originating hub id when the
	// order names no center of its own
	centerID := req.CenterID
	if centerID == 0 {
		centerID = originHubID
	}

	facts := rules.OrderFacts{
		Description:  description,
		Quantity:     req.Quantity * req.Kinds,
		ProductID:    product.ID,
		ProductGroup: product.Group,
		PrintType:    printType,
		Width:        req.Width,
		Height:       req.Height,
		OriginHub:    originHub,
		CenterID:     centerID,
	}

	// ── Hub selection ──
	hubRules, err := s.rulesRepo.HubRules(ctx)
	if err != nil {
		zap.S().Warnw("hub rules unavailable, skipping exclusions", "err", err)
		hubRules = nil
	}
	decision := routing.SelectHub(routing.Input{
		EligibleHubs: product.ProductionHubs,
		DestState:    destState,
		OriginHub:    originHub,
		ProductID:    product.ID,
		Facts:        facts,
		Hubs:         hubs,
		HubRules:     hubRules,
		Today:        calendar.Midnight(s.now()),
	})
	chosenHub := decision.FinalHub
	chosenHubID := catalog.HubID(hubs, chosenHub)

	// ── Hub-local time, optionally shifted for cutoff simulation ──
	actual := s.now().In(s.location(hubs, chosenHub))
	simulated := actual
	if req.TimeOffsetHrs != 0 {
		simulated = actual.Add(time.Duration(req.TimeOffsetHrs) * time.Hour)
		zap.S().Debugw("simulated time in effect",
			"actual", actual, "offset_hours", req.TimeOffsetHrs, "simulated", simulated)
	}
	today := calendar.Midnight(simulated)

	// ── Run date, cutoff, production length, dispatch ──
	startDate, cutoffStatus := EffectiveRunDate(today, simulated.Hour(), product, chosenHub)

	finishingDays := 0
	if finishing, err := s.rulesRepo.FinishingRules(ctx); err == nil {
		finishingDays = rules.FinishingDays(finishing, facts, req.ExtraDays)
	} else {
		zap.S().Warnw("finishing rules unavailable", "err", err)
	}
	totalDays := product.DaysToProduce + finishingDays

	closedDates := catalog.ClosedDatesFor(hubs, chosenHub)
	adjustedStart, dispatch := calendar.AddBusinessDays(startDate, totalDays, closedDates)

	// ── Imposing and preflight ──
	imposing := rules.ImposeNone
	if imposingRules, err := s.rulesRepo.ImposingRules(ctx); err == nil {
		imposing = rules.ImposingAction(imposingRules, facts, today)
	} else {
		zap.S().Warnw("imposing rules unavailable", "err", err)
	}

	profile := catalog.NoPreflightProfile
	if preflightRules, err := s.rulesRepo.PreflightRules(ctx); err == nil {
		profiles, perr := s.catalogRepo.PreflightProfiles(ctx)
		if perr != nil {
			zap.S().Warnw("preflight profiles unavailable", "err", perr)
		}
		profile = rules.PreflightAction(preflightRules, profiles, facts, today)
	} else {
		zap.S().Warnw("preflight rules unavailable", "err", err)
	}

	// ── Assemble ──
	resp := &Response{
		ProductID:        product.ID,
		ProductGroup:     product.Group,
		ProductCategory:  product.Category,
		ProductionHubs:   product.ProductionHubs,
		ProductionGroups: productionGroups,

		CutoffStatus:        cutoffStatus,
		ProductStartDays:    product.StartDays,
		ProductCutoff:       product.CutoffHour,
		DaysToProduceBase:   product.DaysToProduce,
		FinishingDays:       finishingDays,
		TotalProductionDays: totalDays,

		OrderPostcode:       postcode,
		ChosenProductionHub: chosenHub,
		HubTransferTo:       chosenHubID,
		HubDecision:         decision,

		StartDate:         startDate.Format(calendar.ISODate),
		AdjustedStartDate: adjustedStart.Format(calendar.ISODate),

		GrainDirection: grainLabel,
		GrainID:        grainID,
		OrderQuantity:  req.Quantity,
		OrderKinds:     req.Kinds,
		TotalQuantity:  req.Quantity * req.Kinds,

		ImposingAction:       imposing,
		PreflightProfileID:   profile.ID,
		PreflightProfileName: profile.Name,

		SynergyPreflight: product.SynergyPreflight,
		SynergyImpose:    product.SynergyImpose,

		ActualProcessingTime: actual,
	}
	if req.TimeOffsetHrs != 0 {
		resp.SimulatedProcessingTime = &simulated
	}

	if usedFallback {
		// low confidence: no dispatch date, no automatic transfer
		resp.DispatchDate = nil
		resp.EnableAutoHubTransfer = 0
	} else {
		d := dispatch.Format(calendar.ISODate)
		resp.DispatchDate = &d
		if product.EnableAutoHubTransfer == 1 && !strings.EqualFold(chosenHub, originHub) {
			resp.EnableAutoHubTransfer = 1
		}
	}

	metrics.ScheduleDecisions.WithLabelValues(chosenHub, cutoffStatus).Inc()
	if s.broker != nil {
		s.broker.Publish(ctx, events.Event{Type: "schedule.decision", At: actual, Payload: resp})
	}

	zap.S().Infow("order scheduled",
		"order_id", req.OrderID,
		"product_id", product.ID,
		"hub", chosenHub,
		"cutoff_status", cutoffStatus,
		"start_date", resp.StartDate,
		"dispatch_date", resp.DispatchDate)
	return resp, nil
}

// matchProduct resolves the description to a catalog product, falling
// back to the documented fallback product when nothing matches or the
// catalog cannot be read.
func (s *service) matchProduct(ctx context.Context, description string) (catalog.Product, bool) {
	entries, err := s.catalogRepo.ProductKeywords(ctx)
	if err != nil {
		zap.S().Warnw("product keywords unavailable, using fallback product", "err", err)
		return catalog.FallbackProduct(), true
	}
	id, ok := catalog.MatchProductID(description, entries)
	if !ok {
		zap.S().Debugw("no product matched description", "description", description)
		return catalog.FallbackProduct(), true
	}

	products, err := s.catalogRepo.Products(ctx)
	if err != nil {
		zap.S().Warnw("product catalog unavailable, using fallback product", "err", err)
		return catalog.FallbackProduct(), true
	}
	p, ok := products[id]
	if !ok {
		zap.S().Warnw("matched product missing from catalog, using fallback", "product_id", id)
		return catalog.FallbackProduct(), true
	}
	return p, false
}

// location resolves the chosen hub's timezone, defaulting when the hub
// is unknown or its timezone name does not load.
func (s *service) location(hubs []catalog.Hub, hubName string) *time.Location {
	tz := s.defaultTZ
	if h, ok := catalog.HubByName(hubs, hubName); ok && h.Timezone != "" {
		tz = h.Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		zap.S().Warnw("invalid hub timezone, using default", "tz", tz, "err", err)
		loc, err = time.LoadLocation(s.defaultTZ)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}
