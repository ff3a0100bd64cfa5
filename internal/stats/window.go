package stats

import (
	"time"

	"github.com/lingopulse/insight-server/internal/model"
)

// Range is a time window inclusive at both ends.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the window.
func (w Range) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && !ts.After(w.End)
}

// WeekStart returns the most recent Sunday 00:00:00 in now's location. The
// week starts Sunday.
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// MonthStart returns the first instant of now's calendar month.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// ThisWeek spans from the most recent Sunday through now.
func ThisWeek(now time.Time) Range {
	return Range{Start: WeekStart(now), End: now}
}

// ThisMonth spans from the first instant of the current month through now.
func ThisMonth(now time.Time) Range {
	return Range{Start: MonthStart(now), End: now}
}

// LastMonth spans the full previous calendar month regardless of the current
// day.
func LastMonth(now time.Time) Range {
	start := MonthStart(now).AddDate(0, -1, 0)
	end := MonthStart(now).Add(-time.Nanosecond)
	return Range{Start: start, End: end}
}

// CustomRange builds an inclusive window from two dates: start at 00:00:00,
// end at 23:59:59 in loc.
func CustomRange(start, end time.Time, loc *time.Location) Range {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, loc)
	return Range{Start: s, End: e}
}

// PreviousWindow returns the equal-length window immediately preceding w.
func PreviousWindow(w Range) Range {
	duration := w.End.Sub(w.Start)
	end := w.Start.Add(-time.Nanosecond)
	return Range{Start: end.Add(-duration), End: end}
}

// FilterLegacy keeps the legacy records whose timestamp falls inside w.
func FilterLegacy(records []model.ResponseRecord, w Range) []model.ResponseRecord {
	var out []model.ResponseRecord
	for _, r := range records {
		if w.Contains(r.Timestamp) {
			out = append(out, r)
		}
	}
	return out
}

// FilterSectioned keeps the sectioned records submitted inside w.
func FilterSectioned(records []model.SectionedResponseRecord, w Range) []model.SectionedResponseRecord {
	var out []model.SectionedResponseRecord
	for _, r := range records {
		if w.Contains(r.SubmittedAt) {
			out = append(out, r)
		}
	}
	return out
}
