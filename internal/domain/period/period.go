// Package period implements billing-period calendar arithmetic. A billing
// period is identified by the first day of its month; due dates are derived
// from a day-of-month rule with clamping to the last valid day of short
// months, never shifting into the next month.
package period

import "time"

// Layout is the wire format for billing periods.
const Layout = "2006-01-02"

// StartOfMonth normalizes a date to the first day of its month at midnight UTC.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the month containing date.
func DaysInMonth(date time.Time) int {
	first := StartOfMonth(date)
	return first.AddDate(0, 1, -1).Day()
}

// DueDateIn places day inside the month of monthStart, clamping to the last
// day when the month is shorter. day=31 in February yields February 28 (or 29).
func DueDateIn(monthStart time.Time, day int) time.Time {
	last := DaysInMonth(monthStart)
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddMonths advances a date by n calendar months preserving its day of month,
// clamping when the target month is shorter. Unlike time.AddDate, January 31
// plus one month yields February 28/29, not March 2/3.
func AddMonths(date time.Time, n int) time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return DueDateIn(first, date.Day())
}

// ValidDueDay reports whether day is a usable day-of-month rule (1..31).
func ValidDueDay(day int) bool {
	return day >= 1 && day <= 31
}
