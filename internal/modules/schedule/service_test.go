package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printops/scheduler/internal/calendar"
	"github.com/printops/scheduler/internal/events"
	"github.com/printops/scheduler/internal/modules/catalog"
	"github.com/printops/scheduler/internal/modules/rules"
	"github.com/printops/scheduler/internal/store"
)

func melbourne(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)
	return loc
}

// newTestService seeds an in-memory dataset store with a small but
// complete catalog and returns a service pinned to the given clock.
func newTestService(t *testing.T, now time.Time) *service {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryStore()
	catalogRepo := catalog.NewRepository(kv)
	rulesRepo := rules.NewRepository(kv)

	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	require.NoError(t, catalogRepo.SaveProducts(ctx, map[int]catalog.Product{
		1: {
			ID: 1, Group: "Business Cards", Category: "Cards",
			ProductionHubs: []string{"vic", "nsw"},
			StartDays:      weekdays,
			CutoffHour:     12, DaysToProduce: 2,
			EnableAutoHubTransfer: 1,
		},
		2: {
			ID: 2, Group: "Posters", Category: "Wide Format",
			ProductionHubs: []string{"vic"},
			StartDays:      weekdays,
			CutoffHour:     12, DaysToProduce: 3,
			EnableAutoHubTransfer: 1,
			RunDateOverrides: []calendar.DateOverride{
				{Original: "2025-06-02", Replacement: "2025-06-09", Hubs: []string{"vic"}},
			},
		},
	}))
	require.NoError(t, catalogRepo.SaveProductKeywords(ctx, []catalog.ProductKeywordEntry{
		{ProductID: 1, KeywordSet: catalog.KeywordSet{MatchAll: []string{"business cards"}}},
		{ProductID: 2, KeywordSet: catalog.KeywordSet{MatchAll: []string{"poster"}}},
	}))
	require.NoError(t, catalogRepo.SaveHubs(ctx, []catalog.Hub{
		{Name: "vic", ID: 1, State: "vic", NextBest: []string{"nsw", "qld"}, Timezone: "Australia/Melbourne"},
		{Name: "nsw", ID: 2, State: "nsw", NextBest: []string{"vic", "qld"}, Timezone: "Australia/Sydney"},
		{Name: "qld", ID: 3, State: "qld", NextBest: []string{"vic", "nsw"}, Timezone: "Australia/Brisbane"},
		{Name: "nqld", ID: 5, State: "nqld", NextBest: []string{"qld", "vic"}, Timezone: "Australia/Brisbane"},
	}))
	require.NoError(t, catalogRepo.SaveProductionGroups(ctx, []catalog.ProductionGroup{
		{ID: 1, Name: "Cards", KeywordSet: catalog.KeywordSet{MatchAll: []string{"cards"}}},
	}))
	require.NoError(t, catalogRepo.SavePostcodeOverrides(ctx, []catalog.PostcodeOverride{
		{Postcodes: "2650, 4737-4895", HubName: "vic", HubID: 1},
	}))
	require.NoError(t, catalogRepo.SavePreflightProfiles(ctx, []catalog.PreflightProfile{
		{ID: 1, Name: "StandardCMYK"},
	}))

	return &service{
		catalogRepo: catalogRepo,
		rulesRepo:   rulesRepo,
		broker:      events.NewMemoryBroker(),
		defaultTZ:   "Australia/Melbourne",
		now:         func() time.Time { return now },
	}
}

func baseRequest() Request {
	return Request{
		Description:  "500 Business Cards Matt",
		Quantity:     500,
		Kinds:        1,
		PrintType:    1,
		Width:        90,
		Height:       55,
		Orientation:  "landscape",
		OriginHub:    "vic",
		OriginHubID:  1,
		DestState:    "vic",
		DestPostcode: "3000",
	}
}

func TestScheduleBeforeCutoff(t *testing.T) {
	// Monday 2025-06-16, 09:00 hub-local, cutoff 12
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	resp, err := s.Schedule(context.Background(), baseRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 1, resp.ProductID)
	assert.Equal(t, "Business Cards", resp.ProductGroup)
	assert.Equal(t, CutoffBefore, resp.CutoffStatus)
	assert.Equal(t, "2025-06-16", resp.StartDate)
	// 2 production days from Monday
	require.NotNil(t, resp.DispatchDate)
	assert.Equal(t, "2025-06-18", *resp.DispatchDate)
	assert.Equal(t, "vic", resp.ChosenProductionHub)
	assert.Equal(t, 1, resp.HubTransferTo)
	// origin equals chosen hub, nothing to transfer
	assert.Equal(t, 0, resp.EnableAutoHubTransfer)
	assert.Contains(t, resp.ProductionGroups, "Cards")
}

func TestScheduleAtCutoffHourRollsToNextRun(t *testing.T) {
	// exactly the cutoff hour counts as missed
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	resp, err := s.Schedule(context.Background(), baseRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, CutoffAfter, resp.CutoffStatus)
	assert.Equal(t, "2025-06-17", resp.StartDate)
}

func TestScheduleSimulatedOffsetCrossesCutoff(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	req := baseRequest()
	req.TimeOffsetHrs = 4 // 09:00 -> 13:00, past the 12:00 cutoff
	resp, err := s.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, CutoffAfter, resp.CutoffStatus)
	require.NotNil(t, resp.SimulatedProcessingTime)
	assert.Equal(t, 13, resp.SimulatedProcessingTime.Hour())
}

func TestScheduleRunDateOverride(t *testing.T) {
	// natural next run 2025-06-02 is moved to 2025-06-09 for vic
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	req := baseRequest()
	req.Description = "A1 Poster Gloss"
	req.Width, req.Height = 594, 841
	resp, err := s.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 2, resp.ProductID)
	assert.Equal(t, "2025-06-09", resp.StartDate)
	assert.Equal(t, CutoffBefore, resp.CutoffStatus)
}

func TestScheduleFallbackProduct(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	req := baseRequest()
	req.Description = "completely unknown description"
	req.Width, req.Height = 210, 297
	resp, err := s.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, catalog.FallbackProductID, resp.ProductID)
	assert.Equal(t, "No Group Found", resp.ProductGroup)
	assert.Nil(t, resp.DispatchDate)
	assert.Equal(t, 0, resp.EnableAutoHubTransfer)
}

func TestScheduleStateRemaps(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))

	t.Run("sa delivers to vic", func(t *testing.T) {
		s := newTestService(t, now)
		req := baseRequest()
		req.DestState = "sa"
		req.DestPostcode = "5000"
		resp, err := s.Schedule(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "vic", resp.ChosenProductionHub)
		assert.Equal(t, 1, resp.HubTransferTo)
	})

	t.Run("act delivers to nsw", func(t *testing.T) {
		s := newTestService(t, now)
		req := baseRequest()
		req.OriginHub = "nsw"
		req.OriginHubID = 2
		req.DestState = "act"
		req.DestPostcode = "2600"
		resp, err := s.Schedule(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "nsw", resp.ChosenProductionHub)
	})
}

func TestSchedulePostcodeOverride(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	req := baseRequest()
	req.OriginHub = "nsw"
	req.OriginHubID = 2
	req.DestState = "nsw"
	req.DestPostcode = "2650" // configured to route to vic
	resp, err := s.Schedule(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "vic", resp.ChosenProductionHub)
	assert.Equal(t, 1, resp.HubTransferTo)
	// transfer away from the origin hub
	assert.Equal(t, 1, resp.EnableAutoHubTransfer)
}

func TestScheduleEmptyPostcodeDefaults(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	req := baseRequest()
	req.DestPostcode = ""
	resp, err := s.Schedule(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "0000", resp.OrderPostcode)
}

func TestScheduleFinishingDaysExtendDispatch(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	qty := 10000
	require.NoError(t, s.rulesRepo.SaveFinishingRules(context.Background(), rules.FinishingRuleSet{
		KeywordRules: []rules.KeywordRule{{
			ID:       "bulk",
			Keywords: []string{"business cards"},
			AddDays:  1,
			Conditions: &rules.RuleConditions{
				QuantityGreaterThan: &qty,
			},
			Enabled: true,
		}},
	}))

	req := baseRequest()
	req.Quantity = 10001
	resp, err := s.Schedule(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.FinishingDays)
	assert.Equal(t, resp.DaysToProduceBase+1, resp.TotalProductionDays)
	require.NotNil(t, resp.DispatchDate)
	assert.Equal(t, "2025-06-19", *resp.DispatchDate)
}

func TestScheduleClosedDatesSkipDispatch(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	hubs, err := s.catalogRepo.Hubs(context.Background())
	require.NoError(t, err)
	hubs[0].ClosedDates = []string{"2025-06-17"}
	require.NoError(t, s.catalogRepo.SaveHubs(context.Background(), hubs))

	resp, err := s.Schedule(context.Background(), baseRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.DispatchDate)
	// the Tuesday closure pushes the two-day walk out to Thursday
	assert.Equal(t, "2025-06-19", *resp.DispatchDate)
}

func TestScheduleBusinessCardAugmentation(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	req := baseRequest()
	req.Description = "500 Business Cards Matt" // bc-sized, gains " BC"
	req.Orientation = "portrait"
	req.Width, req.Height = 55, 90
	resp, err := s.Schedule(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Vertical", resp.GrainDirection)
	assert.Equal(t, catalog.GrainVertical, resp.GrainID)
}

func TestScheduleIdempotence(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	first, err := s.Schedule(context.Background(), baseRequest())
	require.NoError(t, err)
	second, err := s.Schedule(context.Background(), baseRequest())
	require.NoError(t, err)

	// the clock is pinned, so the responses match exactly
	assert.Equal(t, first, second)
}

func TestSchedulePublishesDecisionEvent(t *testing.T) {
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, melbourne(t))
	s := newTestService(t, now)

	ch, cancel := s.broker.Subscribe()
	defer cancel()

	_, err := s.Schedule(context.Background(), baseRequest())
	require.NoError(t, err)

	select {
	case evt := <-ch:
		assert.Equal(t, "schedule.decision", evt.Type)
	case <-time.After(time.Second):
		t.Fatal("no decision event published")
	}
}
