// Package finance holds the pure computations behind budget status and
// expense summaries. Nothing in here touches the store directly.
package finance

import (
	"time"

	"spendsmart/internal/models"
)

// Window is an inclusive [Start, End] range of instants.
type Window struct {
	Start time.Time `json:"periodStart"`
	End   time.Time `json:"periodEnd"`
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// advance moves t forward by n periods. Month and year steps use
// time.AddDate normalisation, so Jan 31 + 1 month lands on Mar 3
// (Mar 2 in leap years) and Feb 29 + 1 year on Mar 1.
func advance(t time.Time, period models.BudgetPeriod, n int) time.Time {
	switch period {
	case models.BudgetPeriodWeekly:
		return t.AddDate(0, 0, 7*n)
	case models.BudgetPeriodYearly:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, n, 0)
	}
}

// PeriodWindow derives the single window a budget applies to, anchored at
// its start date. It never rolls forward to the period containing "now".
func PeriodWindow(start time.Time, period models.BudgetPeriod) Window {
	start = start.UTC()
	return Window{Start: start, End: advance(start, period, 1)}
}

// CurrentWindow returns the recurring window that contains now, counting
// whole periods from start. Before start it returns the first window.
func CurrentWindow(start time.Time, period models.BudgetPeriod, now time.Time) Window {
	start = start.UTC()
	now = now.UTC()
	if !now.After(start) {
		return PeriodWindow(start, period)
	}

	// Jump close to the target, then step; repeated AddDate from the anchor
	// keeps month-end carry-over consistent with PeriodWindow.
	n := estimatePeriods(start, period, now)
	for n > 0 && advance(start, period, n).After(now) {
		n--
	}
	for !advance(start, period, n+1).After(now) {
		n++
	}
	return Window{Start: advance(start, period, n), End: advance(start, period, n+1)}
}

func estimatePeriods(start time.Time, period models.BudgetPeriod, now time.Time) int {
	switch period {
	case models.BudgetPeriodWeekly:
		return int(now.Sub(start) / (7 * 24 * time.Hour))
	case models.BudgetPeriodYearly:
		return now.Year() - start.Year()
	default:
		return (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	}
}
