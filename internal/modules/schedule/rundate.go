package schedule

import (
	"time"

	"go.uber.org/zap"

	"github.com/printops/scheduler/internal/calendar"
	"github.com/printops/scheduler/internal/modules/catalog"
)

// EffectiveRunDate resolves the production run an order lands on and
// the cutoff status that decision carries.
//
// The natural last and next recurring run dates around today are both
// checked against the product's run-date overrides for the chosen hub.
// An override that moved a past natural run to a date still at or after
// today takes precedence over the plain next natural date, so a
// postponed run is honoured instead of silently skipped. Once the
// effective date is known: a future date schedules the order for it; an
// effective date of today compares the simulated hour against the
// product cutoff (at the cutoff hour counts as missed); a past
// effective date means the run was missed and the order rolls to the
// next cycle, itself override-checked.
//
// today must be a midnight value in hub-local time; StartDays must be
// non-empty.
func EffectiveRunDate(today time.Time, simulatedHour int, p catalog.Product, hub string) (time.Time, string) {
	next := calendar.NextAllowedWeekday(today, p.StartDays)
	last := calendar.LastAllowedWeekday(today, p.StartDays)

	effective := next
	if moved, ok := calendar.ResolveDateOverride(next, p.RunDateOverrides, hub); ok {
		zap.S().Debugw("next run date overridden",
			"natural", next.Format(calendar.ISODate), "moved", moved.Format(calendar.ISODate))
		effective = moved
	}
	if moved, ok := calendar.ResolveDateOverride(last, p.RunDateOverrides, hub); ok && !moved.Before(today) {
		zap.S().Debugw("postponed past run takes precedence",
			"natural", last.Format(calendar.ISODate), "moved", moved.Format(calendar.ISODate))
		effective = moved
	}

	switch {
	case today.Before(effective):
		return effective, CutoffBefore
	case today.After(effective):
		return nextCycle(today, p, hub), CutoffAfter
	default:
		if simulatedHour >= p.CutoffHour {
			return nextCycle(today, p, hub), CutoffAfter
		}
		return effective, CutoffBefore
	}
}

// nextCycle finds the run after today's, override-checked. An override
// pointing into the past cannot help a missed order, so only forward
// moves are honoured here.
func nextCycle(today time.Time, p catalog.Product, hub string) time.Time {
	n := calendar.NextAllowedWeekday(today.AddDate(0, 0, 1), p.StartDays)
	if moved, ok := calendar.ResolveDateOverride(n, p.RunDateOverrides, hub); ok && !moved.Before(today) {
		return moved
	}
	return n
}
