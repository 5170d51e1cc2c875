package schedule

import "time"

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInMonth returns the length of a month, leap years included.
func daysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// NextMonthlyDate advances a due date by one calendar month, clamping the day
// of month to the length of the target month (Jan 31 becomes Feb 28 or 29).
// A clamped day does not recover: advancing from the 30th into a 31-day month
// lands on the 30th.
func NextMonthlyDate(d time.Time) time.Time {
	year, month, day := d.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, d.Location())
}

// daysBetween counts whole calendar days from start to end. Both dates are
// expected at midnight.
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
