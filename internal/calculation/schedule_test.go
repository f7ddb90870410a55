package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensionfolio/pensionfolio/internal/domain"
	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

func TestExpandScheduleMonthly(t *testing.T) {
	plan := ExpandSchedule([]domain.ContributionStep{
		{Amount: decimal.NewFromInt(100), Frequency: domain.FrequencyMonthly, StartDate: date(2025, time.January)},
	}, date(2025, time.January), date(2025, time.April))

	require.Len(t, plan, 4)
	for key, amount := range plan {
		assert.True(t, amount.Equal(decimal.NewFromInt(100)), "month %s", key)
	}
}

func TestExpandScheduleQuarterlyKeepsAnniversaryPhase(t *testing.T) {
	// A quarterly step started in Feb fires in Feb, May, Aug, Nov — also
	// when the projection window starts later than the step.
	plan := ExpandSchedule([]domain.ContributionStep{
		{Amount: decimal.NewFromInt(300), Frequency: domain.FrequencyQuarterly, StartDate: date(2025, time.February)},
	}, date(2025, time.April), date(2025, time.December))

	expected := map[dateutil.MonthKey]int64{
		"2025-04": 0, "2025-05": 300, "2025-06": 0,
		"2025-07": 0, "2025-08": 300, "2025-09": 0,
		"2025-10": 0, "2025-11": 300, "2025-12": 0,
	}
	require.Len(t, plan, len(expected))
	for key, amount := range expected {
		assert.True(t, plan[key].Equal(decimal.NewFromInt(amount)), "month %s", key)
	}
}

func TestExpandScheduleFrequencies(t *testing.T) {
	start := date(2025, time.January)
	end := date(2026, time.December)

	tests := []struct {
		name        string
		frequency   domain.Frequency
		firedMonths []dateutil.MonthKey
	}{
		{
			name:        "Semi-annually",
			frequency:   domain.FrequencySemiAnnually,
			firedMonths: []dateutil.MonthKey{"2025-01", "2025-07", "2026-01", "2026-07"},
		},
		{
			name:        "Annually",
			frequency:   domain.FrequencyAnnually,
			firedMonths: []dateutil.MonthKey{"2025-01", "2026-01"},
		},
		{
			name:        "One time",
			frequency:   domain.FrequencyOneTime,
			firedMonths: []dateutil.MonthKey{"2025-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ExpandSchedule([]domain.ContributionStep{
				{Amount: decimal.NewFromInt(50), Frequency: tt.frequency, StartDate: start},
			}, start, end)

			fired := make(map[dateutil.MonthKey]bool, len(tt.firedMonths))
			for _, m := range tt.firedMonths {
				fired[m] = true
			}
			for key, amount := range plan {
				if fired[key] {
					assert.True(t, amount.Equal(decimal.NewFromInt(50)), "month %s should fire", key)
				} else {
					assert.True(t, amount.IsZero(), "month %s should be zero", key)
				}
			}
		})
	}
}

func TestExpandScheduleRespectsEndDate(t *testing.T) {
	plan := ExpandSchedule([]domain.ContributionStep{
		{
			Amount:    decimal.NewFromInt(100),
			Frequency: domain.FrequencyMonthly,
			StartDate: date(2025, time.January),
			EndDate:   timePtr(date(2025, time.March)),
		},
	}, date(2025, time.January), date(2025, time.June))

	require.Len(t, plan, 6)
	assert.True(t, plan["2025-03"].Equal(decimal.NewFromInt(100)))
	assert.True(t, plan["2025-04"].IsZero())
	assert.True(t, plan["2025-06"].IsZero())
}

func TestExpandScheduleOneTimeOutsideWindow(t *testing.T) {
	plan := ExpandSchedule([]domain.ContributionStep{
		{Amount: decimal.NewFromInt(5000), Frequency: domain.FrequencyOneTime, StartDate: date(2024, time.June)},
	}, date(2025, time.January), date(2025, time.March))

	for key, amount := range plan {
		assert.True(t, amount.IsZero(), "month %s", key)
	}
}

func TestExpandScheduleOverlappingStepsAdd(t *testing.T) {
	plan := ExpandSchedule([]domain.ContributionStep{
		{Amount: decimal.NewFromInt(100), Frequency: domain.FrequencyMonthly, StartDate: date(2025, time.January)},
		{Amount: decimal.NewFromInt(1000), Frequency: domain.FrequencyOneTime, StartDate: date(2025, time.February)},
	}, date(2025, time.January), date(2025, time.March))

	assert.True(t, plan["2025-01"].Equal(decimal.NewFromInt(100)))
	assert.True(t, plan["2025-02"].Equal(decimal.NewFromInt(1100)))
	assert.True(t, plan["2025-03"].Equal(decimal.NewFromInt(100)))
}

func TestExpandScheduleEmptyWindow(t *testing.T) {
	plan := ExpandSchedule([]domain.ContributionStep{
		{Amount: decimal.NewFromInt(100), Frequency: domain.FrequencyMonthly, StartDate: date(2025, time.January)},
	}, date(2025, time.June), date(2025, time.January))

	assert.Empty(t, plan)
}

func TestApplyOverrides(t *testing.T) {
	plan := ExpandSchedule([]domain.ContributionStep{
		{Amount: decimal.NewFromInt(100), Frequency: domain.FrequencyMonthly, StartDate: date(2025, time.January)},
	}, date(2025, time.January), date(2025, time.March))

	ApplyOverrides(plan, []domain.HistoricalContribution{
		{Date: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(77)},
		// outside the window: dropped, never extends the plan
		{Date: date(2025, time.December), Amount: decimal.NewFromInt(9999)},
	})

	require.Len(t, plan, 3)
	assert.True(t, plan["2025-01"].Equal(decimal.NewFromInt(100)))
	assert.True(t, plan["2025-02"].Equal(decimal.NewFromInt(77)), "actuals override the plan")
	assert.True(t, plan["2025-03"].Equal(decimal.NewFromInt(100)))
}
