// Package partition computes the etr_y/etr_ym/etr_ymd bounds of a trailing day window.
package partition

import (
	"fmt"
	"time"
)

// Bind parameter names used by Predicate. Values come from Window.Params.
const (
	ParamStartYear         = "start_year"
	ParamStartYearMonth    = "start_year_month"
	ParamStartYearMonthDay = "start_year_month_day"
)

// Window holds the boundary literals of a trailing N-day window.
// The source table is partitioned by year, then year-month, then year-month-day,
// all stored as zero-padded text, so lexicographic order equals calendar order.
type Window struct {
	StartYear         string    // YYYY
	StartYearMonth    string    // YYYY-MM
	StartYearMonthDay string    // YYYY-MM-DD
	Cutoff            time.Time // UTC midnight of the first day in the window
}

// Trailing returns the window starting `days` calendar days before now's UTC date.
// Example: Trailing(2024-03-15, 30) starts on 2024-02-14.
func Trailing(now time.Time, days int) Window {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -days)

	return Window{
		StartYear:         fmt.Sprintf("%04d", start.Year()),
		StartYearMonth:    fmt.Sprintf("%04d-%02d", start.Year(), int(start.Month())),
		StartYearMonthDay: fmt.Sprintf("%04d-%02d-%02d", start.Year(), int(start.Month()), start.Day()),
		Cutoff:            start,
	}
}

// Predicate renders the ">= window start" filter as a lexicographic comparison
// across the three partition levels:
//
//	(Y > y) OR (Y = y AND M > m) OR (Y = y AND M = m AND D >= d)
//
// Each level is compared directly so the planner can prune partitions; filtering
// on a derived date column would scan every partition. Column names must already
// be validated identifiers.
func Predicate(yearCol, monthCol, dayCol string) string {
	return fmt.Sprintf(
		"(%[1]s > :%[4]s OR (%[1]s = :%[4]s AND %[2]s > :%[5]s) OR (%[1]s = :%[4]s AND %[2]s = :%[5]s AND %[3]s >= :%[6]s))",
		yearCol, monthCol, dayCol,
		ParamStartYear, ParamStartYearMonth, ParamStartYearMonthDay,
	)
}

// Params returns the bind values for Predicate.
func (w Window) Params() map[string]any {
	return map[string]any{
		ParamStartYear:         w.StartYear,
		ParamStartYearMonth:    w.StartYearMonth,
		ParamStartYearMonthDay: w.StartYearMonthDay,
	}
}
