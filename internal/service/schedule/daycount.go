package schedule

import (
	"time"

	"github.com/sdiagne/loansched/internal/domain/models"
)

// interestBetween accrues interest on balance at annualRate over the
// sub-period [start, end) under the given convention. The convention is
// validated when the loan parameters are built, so the switch is exhaustive
// here; callers guarantee end is after start.
//
// For actual_365 the year length is taken from the sub-period's start year.
// When a sub-period straddles December 31 into a year of different length the
// denominator therefore stays that of the first year. This asymmetry is kept
// for compatibility with the historical calculator output.
func interestBetween(balance, annualRate float64, start, end time.Time, conv models.DayCount) float64 {
	switch conv {
	case models.DayCountActual365:
		yearDays := 365.0
		if IsLeapYear(start.Year()) {
			yearDays = 366.0
		}
		return balance * annualRate * float64(daysBetween(start, end)) / yearDays
	case models.DayCountThirty360:
		return balance * annualRate * float64(days360(start, end)) / 360.0
	}
	return 0
}

// days360 counts days between two dates under the 30/360 convention: 30-day
// months, day-of-month capped at 30, floored at zero.
func days360(start, end time.Time) int {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	if d1 > 30 {
		d1 = 30
	}
	if d2 > 30 {
		d2 = 30
	}
	days := 360*(y2-y1) + 30*int(m2-m1) + (d2 - d1)
	if days < 0 {
		return 0
	}
	return days
}
