package leave

import (
	"math"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
)

// WorkingDays counts weekdays in [start, end] inclusive, excluding holiday
// dates. Recurring holidays are re-anchored to the year of the leave start
// before comparison. Half-day leave subtracts 0.5. The result is clamped to
// zero and rounded to one decimal.
func WorkingDays(start, end time.Time, holidays []leave.Holiday, halfDay bool) float64 {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return 0
	}

	holidayDates := expandHolidayDates(start, end, holidays)

	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, isHoliday := holidayDates[d]; isHoliday {
			continue
		}
		days++
	}

	if halfDay {
		days -= 0.5
	}
	if days < 0 {
		days = 0
	}
	return math.Round(days*10) / 10
}

// expandHolidayDates flattens holiday ranges into the set of individual days
// falling inside [start, end]. Recurring ranges keep their month/day span but
// take the year of the leave start.
func expandHolidayDates(start, end time.Time, holidays []leave.Holiday) map[time.Time]struct{} {
	dates := make(map[time.Time]struct{})
	for _, h := range holidays {
		hStart := truncateToDay(h.StartDate)
		hEnd := truncateToDay(h.EndDate)
		if hEnd.Before(hStart) {
			hEnd = hStart
		}

		if h.IsRecurring {
			span := int(hEnd.Sub(hStart).Hours() / 24)
			hStart = time.Date(start.Year(), hStart.Month(), hStart.Day(), 0, 0, 0, 0, hStart.Location())
			hEnd = hStart.AddDate(0, 0, span)
		}

		for d := hStart; !d.After(hEnd); d = d.AddDate(0, 0, 1) {
			if d.Before(start) || d.After(end) {
				continue
			}
			dates[d] = struct{}{}
		}
	}
	return dates
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
