package leave

import (
	"testing"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDays(t *testing.T) {
	// 2026-03-02 is a Monday
	monday := date(2026, time.March, 2)
	friday := date(2026, time.March, 6)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		holidays []leave.Holiday
		halfDay  bool
		want     float64
	}{
		{"full week", monday, friday, nil, false, 5},
		{"single day", monday, monday, nil, false, 1},
		{"single half day", monday, monday, nil, true, 0.5},
		{"half day over week", monday, friday, nil, true, 4.5},
		{"weekend only", date(2026, time.March, 7), date(2026, time.March, 8), nil, false, 0},
		{"spans weekend", friday, date(2026, time.March, 9), nil, false, 2},
		{"end before start", friday, monday, nil, false, 0},
		{
			"holiday inside range",
			monday, friday,
			[]leave.Holiday{{StartDate: date(2026, time.March, 4), EndDate: date(2026, time.March, 4)}},
			false, 4,
		},
		{
			"multi-day holiday",
			monday, friday,
			[]leave.Holiday{{StartDate: date(2026, time.March, 3), EndDate: date(2026, time.March, 5)}},
			false, 2,
		},
		{
			"holiday outside range ignored",
			monday, friday,
			[]leave.Holiday{{StartDate: date(2026, time.March, 16), EndDate: date(2026, time.March, 16)}},
			false, 5,
		},
		{
			"holiday on weekend changes nothing",
			monday, friday,
			[]leave.Holiday{{StartDate: date(2026, time.March, 7), EndDate: date(2026, time.March, 8)}},
			false, 5,
		},
		{
			"recurring holiday re-anchored to leave year",
			monday, friday,
			[]leave.Holiday{{StartDate: date(2020, time.March, 4), EndDate: date(2020, time.March, 4), IsRecurring: true}},
			false, 4,
		},
		{
			"recurring holiday keeps its span",
			monday, friday,
			[]leave.Holiday{{StartDate: date(2020, time.March, 3), EndDate: date(2020, time.March, 4), IsRecurring: true}},
			false, 3,
		},
		{
			"half day on a holiday clamps to zero",
			date(2026, time.March, 4), date(2026, time.March, 4),
			[]leave.Holiday{{StartDate: date(2026, time.March, 4), EndDate: date(2026, time.March, 4)}},
			true, 0,
		},
	}

	for _, c := range cases {
		got := WorkingDays(c.start, c.end, c.holidays, c.halfDay)
		if got != c.want {
			t.Errorf("%s: WorkingDays = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestWorkingDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)

	if got := WorkingDays(start, end, nil, false); got != 2 {
		t.Errorf("WorkingDays = %v, want 2", got)
	}
}
