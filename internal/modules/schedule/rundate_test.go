package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/printops/scheduler/internal/calendar"
	"github.com/printops/scheduler/internal/modules/catalog"
)

func weekdayProduct() catalog.Product {
	return catalog.Product{
		StartDays:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		CutoffHour: 12,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveRunDateCutoff(t *testing.T) {
	p := weekdayProduct()
	monday := day(2025, 6, 16)

	t.Run("before cutoff starts today", func(t *testing.T) {
		start, status := EffectiveRunDate(monday, 11, p, "vic")
		assert.Equal(t, monday, start)
		assert.Equal(t, CutoffBefore, status)
	})

	t.Run("at the cutoff hour rolls over", func(t *testing.T) {
		start, status := EffectiveRunDate(monday, 12, p, "vic")
		assert.Equal(t, day(2025, 6, 17), start)
		assert.Equal(t, CutoffAfter, status)
	})

	t.Run("friday after cutoff rolls to monday", func(t *testing.T) {
		start, status := EffectiveRunDate(day(2025, 6, 20), 15, p, "vic")
		assert.Equal(t, day(2025, 6, 23), start)
		assert.Equal(t, CutoffAfter, status)
	})
}

func TestEffectiveRunDateRestrictedStartDays(t *testing.T) {
	p := weekdayProduct()
	p.StartDays = []string{"Wednesday"}

	// Monday waits for Wednesday regardless of the hour
	start, status := EffectiveRunDate(day(2025, 6, 16), 15, p, "vic")
	assert.Equal(t, day(2025, 6, 18), start)
	assert.Equal(t, CutoffBefore, status)
}

func TestEffectiveRunDateOverrides(t *testing.T) {
	t.Run("next natural run moved forward", func(t *testing.T) {
		p := weekdayProduct()
		p.RunDateOverrides = []calendar.DateOverride{
			{Original: "2025-06-02", Replacement: "2025-06-09", Hubs: []string{"vic"}},
		}
		start, status := EffectiveRunDate(day(2025, 6, 2), 8, p, "vic")
		assert.Equal(t, day(2025, 6, 9), start)
		assert.Equal(t, CutoffBefore, status)
	})

	t.Run("override scoped to another hub is ignored", func(t *testing.T) {
		p := weekdayProduct()
		p.RunDateOverrides = []calendar.DateOverride{
			{Original: "2025-06-02", Replacement: "2025-06-09", Hubs: []string{"nsw"}},
		}
		start, _ := EffectiveRunDate(day(2025, 6, 2), 8, p, "vic")
		assert.Equal(t, day(2025, 6, 2), start)
	})

	t.Run("postponed past run still pending takes precedence", func(t *testing.T) {
		p := weekdayProduct()
		p.StartDays = []string{"Monday"}
		p.RunDateOverrides = []calendar.DateOverride{
			// the Monday run was pushed to Wednesday
			{Original: "2025-06-16", Replacement: "2025-06-18", Hubs: []string{"vic"}},
		}
		// Tuesday: last natural run (Monday) was moved to tomorrow
		start, status := EffectiveRunDate(day(2025, 6, 17), 8, p, "vic")
		assert.Equal(t, day(2025, 6, 18), start)
		assert.Equal(t, CutoffBefore, status)
	})

	t.Run("override into the past means the run was missed", func(t *testing.T) {
		p := weekdayProduct()
		p.StartDays = []string{"Monday"}
		p.RunDateOverrides = []calendar.DateOverride{
			// next Monday's run was pulled back before today
			{Original: "2025-06-23", Replacement: "2025-06-20", Hubs: []string{"vic"}},
		}
		// Saturday 2025-06-21: the only run left is the following cycle
		start, status := EffectiveRunDate(day(2025, 6, 21), 8, p, "vic")
		assert.Equal(t, day(2025, 6, 23), start)
		assert.Equal(t, CutoffAfter, status)
	})
}
