package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// Salary cycles run from this day of the previous month up to the day before it.
	cycleStartDay = 26
)

// DateOnly truncates t to midnight, keeping the wall clock date. Punch times are
// device-local, so no zone conversion is applied.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats the wall clock date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonth parses a YYYY-MM salary month.
func ParseMonth(month string) (time.Time, error) {
	if len(month) != len(MonthLayout) {
		return time.Time{}, fmt.Errorf("invalid month %q", month)
	}
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t, nil
}

// SalaryCycle returns the inclusive date range for a salary month: the 26th of
// the previous month through the 25th of the given month.
func SalaryCycle(month string) (start, end time.Time, err error) {
	m, err := ParseMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(m.Year(), m.Month()-1, cycleStartDay, 0, 0, 0, 0, time.UTC)
	end = time.Date(m.Year(), m.Month(), cycleStartDay-1, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

// SalaryMonthOf returns the salary month whose cycle contains date.
func SalaryMonthOf(date time.Time) string {
	d := DateOnly(date)
	if d.Day() >= cycleStartDay {
		d = time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	}
	return d.Format(MonthLayout)
}

// DaysInclusive counts calendar days in [from, to].
func DaysInclusive(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(DateOnly(to).Sub(DateOnly(from)).Hours()/24) + 1
}

// EachDay calls fn for every date in [from, to] in order.
func EachDay(from, to time.Time, fn func(day time.Time)) {
	for d := DateOnly(from); !d.After(DateOnly(to)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
