package attendance

import (
	"math"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/config"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/attendance"
)

// EvaluateCheckIn grades a check-in against the shift start. Arriving within
// the grace period is present; anything later is late, with lateness measured
// from the shift start itself, not the grace boundary.
func EvaluateCheckIn(checkIn time.Time, shiftStart config.ClockTime, graceMinutes int) (attendance.CheckInStatus, int) {
	start := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		shiftStart.Hour, shiftStart.Minute, 0, 0, checkIn.Location())
	deadline := start.Add(time.Duration(graceMinutes) * time.Minute)

	if !checkIn.After(deadline) {
		return attendance.CheckInPresent, 0
	}
	return attendance.CheckInLate, int(checkIn.Sub(start).Minutes())
}

// WorkedHours is the check-in to check-out span in hours, two decimals.
// Negative spans collapse to zero.
func WorkedHours(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*100) / 100
}

// ShiftEndOn pins the configured shift end clock to a calendar day.
func ShiftEndOn(day time.Time, shiftEnd config.ClockTime) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		shiftEnd.Hour, shiftEnd.Minute, 0, 0, day.Location())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
