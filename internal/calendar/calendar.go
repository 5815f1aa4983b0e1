// Package calendar implements the date arithmetic behind production
// scheduling: weekday-restricted run date resolution, one-off run date
// overrides, and business-day walks that skip weekends and hub closures.
//
// All functions operate on dates only; callers normalise to midnight
// before passing a time.Time in. Closed dates are ISO "2006-01-02"
// strings, matching the hub catalog format.
package calendar

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// ISODate is the wire format for all calendar dates.
const ISODate = "2006-01-02"

// DateOverride is a one-off replacement of a scheduled run date. An
// override applies only to the hubs it names.
type DateOverride struct {
	Original    string   `json:"original"`
	Replacement string   `json:"replacement"`
	Hubs        []string `json:"hubs"`
}

// Midnight truncates t to its date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextAllowedWeekday scans forward from date (inclusive) until it lands
// on a weekday named in allowed.
//
// Precondition: allowed must contain at least one real weekday name,
// otherwise the scan never terminates. Catalogs guarantee this; it is
// not checked here.
func NextAllowedWeekday(date time.Time, allowed []string) time.Time {
	d := date
	for !weekdayAllowed(d, allowed) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// LastAllowedWeekday scans backward from date (inclusive) for at most
// one full week. If no allowed weekday exists within 7 days the input is
// returned unchanged; the caller should treat that as a degenerate
// weekday configuration.
func LastAllowedWeekday(date time.Time, allowed []string) time.Time {
	d := date
	for i := 0; i < 7; i++ {
		if weekdayAllowed(d, allowed) {
			return d
		}
		d = d.AddDate(0, 0, -1)
	}
	return date
}

// ResolveDateOverride returns the replacement date of the first override
// whose original date equals candidate and whose hub list contains hub
// (case-insensitive). The second return is false when no override
// applies. Malformed entries are skipped with a warning so one bad row
// cannot poison the whole catalog.
func ResolveDateOverride(candidate time.Time, overrides []DateOverride, hub string) (time.Time, bool) {
	for _, ov := range overrides {
		orig, err := time.ParseInLocation(ISODate, ov.Original, candidate.Location())
		if err != nil {
			zap.S().Warnw("skipping run date override with bad original date", "original", ov.Original)
			continue
		}
		repl, err := time.ParseInLocation(ISODate, ov.Replacement, candidate.Location())
		if err != nil {
			zap.S().Warnw("skipping run date override with bad replacement date", "replacement", ov.Replacement)
			continue
		}
		if !sameDate(orig, candidate) {
			continue
		}
		for _, h := range ov.Hubs {
			if strings.EqualFold(h, hub) {
				return repl, true
			}
		}
	}
	return time.Time{}, false
}

// AddBusinessDays walks forward from start, counting numDays weekdays
// that are not in closedDates. The returned adjusted start is start
// advanced past any leading weekend or closed date; the dispatch date is
// the final counted day. numDays <= 0 yields dispatch == adjustedStart.
func AddBusinessDays(start time.Time, numDays int, closedDates []string) (adjustedStart, dispatch time.Time) {
	closed := make(map[string]bool, len(closedDates))
	for _, c := range closedDates {
		closed[c] = true
	}

	d := start
	for isWeekend(d) || closed[d.Format(ISODate)] {
		d = d.AddDate(0, 0, 1)
	}
	adjustedStart = d

	counted := 0
	for counted < numDays {
		d = d.AddDate(0, 0, 1)
		if isWeekend(d) || closed[d.Format(ISODate)] {
			continue
		}
		counted++
	}
	return adjustedStart, d
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func weekdayAllowed(d time.Time, allowed []string) bool {
	name := d.Weekday().String()
	for _, a := range allowed {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
