package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

// ScenarioType identifies one of the three projection runs. The runs differ
// only by annual return rate, never by arithmetic.
type ScenarioType string

const (
	ScenarioPessimistic ScenarioType = "pessimistic"
	ScenarioRealistic   ScenarioType = "realistic"
	ScenarioOptimistic  ScenarioType = "optimistic"
)

// ScenarioTypes lists all scenario types in their conventional order.
var ScenarioTypes = []ScenarioType{ScenarioPessimistic, ScenarioRealistic, ScenarioOptimistic}

// Valid reports whether the scenario type is one of the three known labels.
func (s ScenarioType) Valid() bool {
	switch s {
	case ScenarioPessimistic, ScenarioRealistic, ScenarioOptimistic:
		return true
	}
	return false
}

// Frequency describes how often a contribution step recurs.
type Frequency string

const (
	FrequencyMonthly      Frequency = "MONTHLY"
	FrequencyQuarterly    Frequency = "QUARTERLY"
	FrequencySemiAnnually Frequency = "SEMI_ANNUALLY"
	FrequencyAnnually     Frequency = "ANNUALLY"
	FrequencyOneTime      Frequency = "ONE_TIME"
)

// Valid reports whether the frequency is a known value.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiAnnually, FrequencyAnnually, FrequencyOneTime:
		return true
	}
	return false
}

// IntervalMonths returns the recurrence interval in months, or 0 for ONE_TIME.
func (f Frequency) IntervalMonths() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencySemiAnnually:
		return 6
	case FrequencyAnnually:
		return 12
	default:
		return 0
	}
}

// ContributionStep is one fragment of a piecewise contribution plan: a
// recurring amount over a date range. A nil EndDate means the step continues
// indefinitely, bounded in practice by the projection's own end date.
type ContributionStep struct {
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
	StartDate time.Time       `yaml:"start_date" json:"start_date"`
	EndDate   *time.Time      `yaml:"end_date,omitempty" json:"end_date,omitempty"`
}

// Validate checks a contribution step for well-formed values.
func (cs *ContributionStep) Validate() error {
	if !cs.Frequency.Valid() {
		return fmt.Errorf("unknown contribution frequency %q", cs.Frequency)
	}
	if cs.Amount.IsNegative() {
		return fmt.Errorf("contribution amount cannot be negative, got %s", cs.Amount)
	}
	if cs.StartDate.IsZero() {
		return fmt.Errorf("contribution step start date is required")
	}
	if cs.EndDate != nil && cs.EndDate.Before(cs.StartDate) {
		return fmt.Errorf("contribution step end date %s is before start date %s",
			cs.EndDate.Format("2006-01-02"), cs.StartDate.Format("2006-01-02"))
	}
	return nil
}

// HistoricalContribution records a contribution that actually occurred. For
// the month it falls in, it overrides whatever the plan would have applied.
type HistoricalContribution struct {
	Date   time.Time       `yaml:"date" json:"date"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// MonthKey returns the month the contribution was booked in.
func (hc HistoricalContribution) MonthKey() dateutil.MonthKey {
	return dateutil.KeyOf(hc.Date)
}

// ProjectionDataPoint is one monthly sample of a value trajectory: the
// balance after that month's interest and contribution were applied.
type ProjectionDataPoint struct {
	Date                     time.Time       `json:"date"`
	Value                    decimal.Decimal `json:"value"`
	ContributionAmount       decimal.Decimal `json:"contribution_amount"`
	AccumulatedContributions decimal.Decimal `json:"accumulated_contributions"`
	ScenarioType             ScenarioType    `json:"scenario_type,omitempty"`
	IsProjection             bool            `json:"is_projection"`
}

// MonthKey returns the calendar month this data point belongs to.
func (p ProjectionDataPoint) MonthKey() dateutil.MonthKey {
	return dateutil.KeyOf(p.Date)
}

// ProjectionScenario is the full output of one scenario run: one data point
// per calendar month from start through end date, plus summary figures.
type ProjectionScenario struct {
	Type               ScenarioType          `json:"type"`
	DataPoints         []ProjectionDataPoint `json:"data_points"`
	ReturnRate         decimal.Decimal       `json:"return_rate"` // annual percent, e.g. 6.0
	FinalValue         decimal.Decimal       `json:"final_value"`
	TotalContributions decimal.Decimal       `json:"total_contributions"`
	TotalReturns       decimal.Decimal       `json:"total_returns"`
}

// ByMonth indexes the scenario's data points by month key. The engine emits
// exactly one point per month, so the map is lossless.
func (s *ProjectionScenario) ByMonth() map[dateutil.MonthKey]ProjectionDataPoint {
	out := make(map[dateutil.MonthKey]ProjectionDataPoint, len(s.DataPoints))
	for _, p := range s.DataPoints {
		out[p.MonthKey()] = p
	}
	return out
}

// IsEmpty reports whether the scenario produced no simulated months.
func (s *ProjectionScenario) IsEmpty() bool {
	return len(s.DataPoints) == 0
}

// ScenarioRates holds the three annual return rates, in percent.
type ScenarioRates struct {
	Pessimistic decimal.Decimal `yaml:"pessimistic" json:"pessimistic"`
	Realistic   decimal.Decimal `yaml:"realistic" json:"realistic"`
	Optimistic  decimal.Decimal `yaml:"optimistic" json:"optimistic"`
}

// Rate returns the rate configured for a scenario type.
func (r ScenarioRates) Rate(t ScenarioType) decimal.Decimal {
	switch t {
	case ScenarioPessimistic:
		return r.Pessimistic
	case ScenarioOptimistic:
		return r.Optimistic
	default:
		return r.Realistic
	}
}

// Uniform returns rates that use the same annual rate for all three
// scenarios. Used for pension kinds with a fixed, non-market rate.
func Uniform(rate decimal.Decimal) ScenarioRates {
	return ScenarioRates{Pessimistic: rate, Realistic: rate, Optimistic: rate}
}

// Validate rejects rates outside a plausible percent window and rates that
// are not ordered pessimistic <= realistic <= optimistic.
func (r ScenarioRates) Validate() error {
	bound := decimal.NewFromInt(100)
	for _, t := range ScenarioTypes {
		rate := r.Rate(t)
		if rate.LessThan(bound.Neg()) || rate.GreaterThan(bound) {
			return fmt.Errorf("%s rate must be between -100 and 100 percent, got %s", t, rate)
		}
	}
	if r.Pessimistic.GreaterThan(r.Realistic) || r.Realistic.GreaterThan(r.Optimistic) {
		return fmt.Errorf("scenario rates must be ordered pessimistic <= realistic <= optimistic, got %s/%s/%s",
			r.Pessimistic, r.Realistic, r.Optimistic)
	}
	return nil
}

// ScenarioSet groups the three scenario runs of one projection request.
type ScenarioSet struct {
	Pessimistic *ProjectionScenario `json:"pessimistic"`
	Realistic   *ProjectionScenario `json:"realistic"`
	Optimistic  *ProjectionScenario `json:"optimistic"`
}

// Scenario returns the run for a scenario type.
func (s *ScenarioSet) Scenario(t ScenarioType) *ProjectionScenario {
	switch t {
	case ScenarioPessimistic:
		return s.Pessimistic
	case ScenarioOptimistic:
		return s.Optimistic
	default:
		return s.Realistic
	}
}
