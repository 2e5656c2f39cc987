package attendance

import (
	"testing"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/config"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/attendance"
)

func at(h, m int) time.Time {
	return time.Date(2026, time.March, 2, h, m, 0, 0, time.UTC)
}

func TestEvaluateCheckIn(t *testing.T) {
	shiftStart := config.ClockTime{Hour: 9, Minute: 0}

	cases := []struct {
		name        string
		checkIn     time.Time
		grace       int
		wantStatus  attendance.CheckInStatus
		wantMinutes int
	}{
		{"early", at(8, 45), 10, attendance.CheckInPresent, 0},
		{"on time", at(9, 0), 10, attendance.CheckInPresent, 0},
		{"within grace", at(9, 5), 10, attendance.CheckInPresent, 0},
		{"at grace boundary", at(9, 10), 10, attendance.CheckInPresent, 0},
		{"past grace counts from shift start", at(9, 15), 10, attendance.CheckInLate, 15},
		{"one minute past grace", at(9, 11), 10, attendance.CheckInLate, 11},
		{"no grace", at(9, 1), 0, attendance.CheckInLate, 1},
		{"hours late", at(11, 30), 10, attendance.CheckInLate, 150},
	}

	for _, c := range cases {
		status, minutes := EvaluateCheckIn(c.checkIn, shiftStart, c.grace)
		if status != c.wantStatus || minutes != c.wantMinutes {
			t.Errorf("%s: EvaluateCheckIn = (%v, %d), want (%v, %d)",
				c.name, status, minutes, c.wantStatus, c.wantMinutes)
		}
	}
}

func TestWorkedHours(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     float64
	}{
		{"full day", at(9, 0), at(18, 0), 9},
		{"rounded to two decimals", at(9, 0), at(17, 25), 8.42},
		{"short span", at(9, 0), at(9, 30), 0.5},
		{"negative span clamps", at(18, 0), at(9, 0), 0},
	}

	for _, c := range cases {
		if got := WorkedHours(c.checkIn, c.checkOut); got != c.want {
			t.Errorf("%s: WorkedHours = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestShiftEndOn(t *testing.T) {
	day := time.Date(2026, time.March, 2, 13, 45, 12, 0, time.UTC)
	got := ShiftEndOn(day, config.ClockTime{Hour: 18, Minute: 30})
	want := time.Date(2026, time.March, 2, 18, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ShiftEndOn = %v, want %v", got, want)
	}
}
