package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pensionfolio/pensionfolio/internal/calculation"
	"github.com/pensionfolio/pensionfolio/internal/domain"
	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

// Small debugging aid: prints the expanded month-by-month contribution
// schedule for a hand-built plan.
func main() {
	planEnd := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	steps := []domain.ContributionStep{
		{
			Amount:    decimal.NewFromInt(250),
			Frequency: domain.FrequencyMonthly,
			StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Amount:    decimal.NewFromInt(1000),
			Frequency: domain.FrequencyQuarterly,
			StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   &planEnd,
		},
		{
			Amount:    decimal.NewFromInt(5000),
			Frequency: domain.FrequencyOneTime,
			StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	plan := calculation.ExpandSchedule(steps, start, end)

	keys := make([]dateutil.MonthKey, 0, len(plan))
	for k := range plan {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	fmt.Printf("Expanded schedule %s .. %s (%d months):\n",
		start.Format("2006-01"), end.Format("2006-01"), len(keys))
	total := decimal.Zero
	for _, k := range keys {
		amount := plan[k]
		total = total.Add(amount)
		fmt.Printf("  %s  %10s\n", k, amount.StringFixed(2))
	}
	fmt.Printf("Total contributions: %s\n", total.StringFixed(2))
}
