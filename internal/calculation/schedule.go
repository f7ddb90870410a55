package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pensionfolio/pensionfolio/internal/domain"
	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

// ExpandSchedule expands a piecewise contribution plan into concrete
// per-month amounts for every month in [start, end], keyed by month key.
// Every simulated month gets an entry; months no step covers are zero.
//
// A recurring step fires in its start month and every IntervalMonths after
// it, up to its end date (or the projection end when open-ended). ONE_TIME
// steps fire only in their start month. Steps overlapping in a month add up.
func ExpandSchedule(steps []domain.ContributionStep, start, end time.Time) map[dateutil.MonthKey]decimal.Decimal {
	start = dateutil.StartOfMonth(start)
	end = dateutil.StartOfMonth(end)

	plan := make(map[dateutil.MonthKey]decimal.Decimal)
	if start.After(end) {
		return plan
	}
	for date := start; !date.After(end); date = dateutil.AddMonths(date, 1) {
		plan[dateutil.KeyOf(date)] = decimal.Zero
	}

	for _, step := range steps {
		stepStart := dateutil.StartOfMonth(step.StartDate)
		stepEnd := end
		if step.EndDate != nil {
			stepEnd = dateutil.StartOfMonth(*step.EndDate)
			if stepEnd.After(end) {
				stepEnd = end
			}
		}

		if step.Frequency == domain.FrequencyOneTime {
			if !stepStart.Before(start) && !stepStart.After(end) {
				key := dateutil.KeyOf(stepStart)
				plan[key] = plan[key].Add(step.Amount)
			}
			continue
		}

		interval := step.Frequency.IntervalMonths()
		for date := stepStart; !date.After(stepEnd); date = dateutil.AddMonths(date, interval) {
			if date.Before(start) {
				continue
			}
			key := dateutil.KeyOf(date)
			plan[key] = plan[key].Add(step.Amount)
		}
	}

	return plan
}

// ApplyOverrides replaces planned amounts with historical actuals for the
// months the actuals fall in. Actuals always win over the plan; entries for
// months outside the plan window are dropped, matching the engine's rule
// that out-of-range historical records have no effect.
func ApplyOverrides(plan map[dateutil.MonthKey]decimal.Decimal, historical []domain.HistoricalContribution) {
	for _, hc := range historical {
		key := hc.MonthKey()
		if _, ok := plan[key]; ok {
			plan[key] = hc.Amount
		}
	}
}
