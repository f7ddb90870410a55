package calculation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pensionfolio/pensionfolio/internal/domain"
	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
	rateBound      = decimal.NewFromInt(100)
)

// ProjectionEngine computes monthly-compounded value trajectories for pension
// balances. All methods are pure: same inputs always yield the same series.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates a projection engine with a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. A nil logger installs the no-op.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// ScenarioInput holds the parameters for one single-scenario run.
type ScenarioInput struct {
	InitialValue        decimal.Decimal
	MonthlyContribution decimal.Decimal
	AnnualReturnRate    decimal.Decimal // percent, e.g. 6.0 for 6%
	StartDate           time.Time
	EndDate             time.Time
	ScenarioType        domain.ScenarioType

	// HistoricalContributions override MonthlyContribution for the months
	// they fall in. Entries outside [StartDate, EndDate] never match a
	// simulated month and are ignored.
	HistoricalContributions []domain.HistoricalContribution
}

// Validate rejects malformed inputs before the compounding loop runs, so a
// bad value can never poison the emitted series.
func (in *ScenarioInput) Validate() error {
	if in.InitialValue.IsNegative() {
		return fmt.Errorf("initial value cannot be negative, got %s", in.InitialValue)
	}
	if in.MonthlyContribution.IsNegative() {
		return fmt.Errorf("monthly contribution cannot be negative, got %s", in.MonthlyContribution)
	}
	if in.AnnualReturnRate.LessThan(rateBound.Neg()) || in.AnnualReturnRate.GreaterThan(rateBound) {
		return fmt.Errorf("annual return rate must be between -100 and 100 percent, got %s", in.AnnualReturnRate)
	}
	if !in.ScenarioType.Valid() {
		return fmt.Errorf("unknown scenario type %q", in.ScenarioType)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("start and end date are required")
	}
	return nil
}

// CalculateSingleScenario produces the value trajectory for one scenario,
// one data point per calendar month from StartDate through EndDate inclusive.
// A start after the end yields an empty series with FinalValue equal to the
// initial value rather than an error, since any user-selectable date pair
// must resolve to a renderable result.
func (pe *ProjectionEngine) CalculateSingleScenario(in ScenarioInput) (*domain.ProjectionScenario, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario input: %w", err)
	}

	overrides := make(map[dateutil.MonthKey]decimal.Decimal, len(in.HistoricalContributions))
	for _, hc := range in.HistoricalContributions {
		overrides[hc.MonthKey()] = hc.Amount
	}

	return pe.run(in.InitialValue, in.MonthlyContribution, in.AnnualReturnRate, in.StartDate, in.EndDate, in.ScenarioType, overrides), nil
}

// run executes the compounding loop. The month's contribution comes from the
// overrides map when present, otherwise the fallback applies.
//
// The order of operations inside a month is load-bearing and matches what
// chart consumers expect: interest accrues on the pre-contribution balance
// first, then the contribution is added, so a contribution only starts
// compounding the month after it is made. The monthly rate is the flat
// annual/12 approximation, not the effective monthly rate.
func (pe *ProjectionEngine) run(initial, fallback, annualRate decimal.Decimal, start, end time.Time, scenario domain.ScenarioType, overrides map[dateutil.MonthKey]decimal.Decimal) *domain.ProjectionScenario {
	start = dateutil.StartOfMonth(start)
	end = dateutil.StartOfMonth(end)

	monthlyRate := annualRate.Div(decimalTwelve).Div(decimalHundred)
	growth := decimalOne.Add(monthlyRate)

	current := initial
	accumulated := decimal.Zero
	var points []domain.ProjectionDataPoint

	for date := start; !date.After(end); date = dateutil.AddMonths(date, 1) {
		contribution, ok := overrides[dateutil.KeyOf(date)]
		if !ok {
			contribution = fallback
		}

		current = current.Mul(growth)
		current = current.Add(contribution)
		accumulated = accumulated.Add(contribution)

		points = append(points, domain.ProjectionDataPoint{
			Date:                     date,
			Value:                    current,
			ContributionAmount:       contribution,
			AccumulatedContributions: accumulated,
			ScenarioType:             scenario,
			IsProjection:             true,
		})
	}

	sc := &domain.ProjectionScenario{
		Type:       scenario,
		DataPoints: points,
		ReturnRate: annualRate,
	}
	if len(points) == 0 {
		sc.FinalValue = initial
		return sc
	}

	last := points[len(points)-1]
	sc.FinalValue = last.Value
	sc.TotalContributions = last.AccumulatedContributions
	sc.TotalReturns = sc.FinalValue.Sub(sc.TotalContributions).Sub(initial)
	return sc
}

// MultiScenarioInput holds the parameters for a three-scenario run over a
// piecewise contribution plan.
type MultiScenarioInput struct {
	InitialValue            decimal.Decimal
	ContributionSteps       []domain.ContributionStep
	Rates                   domain.ScenarioRates
	StartDate               time.Time
	EndDate                 time.Time
	HistoricalContributions []domain.HistoricalContribution
}

// Validate checks the multi-scenario input at the boundary.
func (in *MultiScenarioInput) Validate() error {
	if in.InitialValue.IsNegative() {
		return fmt.Errorf("initial value cannot be negative, got %s", in.InitialValue)
	}
	if err := in.Rates.Validate(); err != nil {
		return err
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("start and end date are required")
	}
	for i := range in.ContributionSteps {
		if err := in.ContributionSteps[i].Validate(); err != nil {
			return fmt.Errorf("contribution step %d: %w", i, err)
		}
	}
	return nil
}

// CalculateScenarios runs the single-scenario algorithm three times, once per
// rate, against the same initial value, the same expanded contribution plan,
// and the same historical overrides. The runs share no mutable state, so they
// execute concurrently; the result is identical to three sequential calls to
// CalculateSingleScenario with differing rates.
//
// Months not covered by any step contribute zero. Where a historical actual
// exists for a month, it replaces the planned amount entirely.
func (pe *ProjectionEngine) CalculateScenarios(ctx context.Context, in MultiScenarioInput) (*domain.ScenarioSet, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid multi-scenario input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan := ExpandSchedule(in.ContributionSteps, in.StartDate, in.EndDate)
	ApplyOverrides(plan, in.HistoricalContributions)

	pe.Logger.Debugf("running %d scenarios over %d planned months",
		len(domain.ScenarioTypes), len(plan))

	results := make([]*domain.ProjectionScenario, len(domain.ScenarioTypes))
	var wg sync.WaitGroup
	for i, st := range domain.ScenarioTypes {
		wg.Add(1)
		go func(idx int, scenario domain.ScenarioType) {
			defer wg.Done()
			results[idx] = pe.run(in.InitialValue, decimal.Zero, in.Rates.Rate(scenario), in.StartDate, in.EndDate, scenario, plan)
		}(i, st)
	}
	wg.Wait()

	return &domain.ScenarioSet{
		Pessimistic: results[0],
		Realistic:   results[1],
		Optimistic:  results[2],
	}, nil
}
