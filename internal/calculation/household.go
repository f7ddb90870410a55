package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pensionfolio/pensionfolio/internal/domain"
	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

// HouseholdInput describes a full household projection request.
type HouseholdInput struct {
	Household domain.Household
	Rates     domain.ScenarioRates
	StartDate time.Time
	EndDate   time.Time
}

// RunHousehold projects every pension of the household across the three
// scenarios and aggregates per-month household totals. All pensions share
// the same simulation window so the per-pension series align month by month.
func (pe *ProjectionEngine) RunHousehold(ctx context.Context, in HouseholdInput) (*domain.HouseholdProjection, error) {
	if err := in.Household.Validate(); err != nil {
		return nil, fmt.Errorf("invalid household: %w", err)
	}
	if err := in.Rates.Validate(); err != nil {
		return nil, err
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, fmt.Errorf("start and end date are required")
	}

	result := &domain.HouseholdProjection{
		StartDate: dateutil.StartOfMonth(in.StartDate),
		EndDate:   dateutil.StartOfMonth(in.EndDate),
		Rates:     in.Rates,
	}

	initialTotal := decimal.Zero
	for i := range in.Household.Pensions {
		p := &in.Household.Pensions[i]

		set, err := pe.CalculateScenarios(ctx, MultiScenarioInput{
			InitialValue:            p.CurrentValue,
			ContributionSteps:       p.ContributionPlan,
			Rates:                   ratesForPension(p, in.Rates),
			StartDate:               in.StartDate,
			EndDate:                 in.EndDate,
			HistoricalContributions: p.HistoricalContributions,
		})
		if err != nil {
			return nil, fmt.Errorf("pension %s: %w", p.ID, err)
		}

		pe.Logger.Debugf("projected pension %s (%s): final realistic value %s",
			p.ID, p.Kind, set.Realistic.FinalValue.StringFixed(2))

		result.Pensions = append(result.Pensions, domain.PensionProjection{
			PensionID:   p.ID,
			PensionName: p.Name,
			Kind:        p.Kind,
			MemberID:    p.MemberID,
			Scenarios:   *set,
		})
		initialTotal = initialTotal.Add(p.CurrentValue)
	}

	result.Totals = domain.ScenarioSet{
		Pessimistic: aggregateScenario(result.Pensions, domain.ScenarioPessimistic, in.Rates.Pessimistic, initialTotal, result.StartDate, result.EndDate),
		Realistic:   aggregateScenario(result.Pensions, domain.ScenarioRealistic, in.Rates.Realistic, initialTotal, result.StartDate, result.EndDate),
		Optimistic:  aggregateScenario(result.Pensions, domain.ScenarioOptimistic, in.Rates.Optimistic, initialTotal, result.StartDate, result.EndDate),
	}

	return result, nil
}

// ratesForPension selects the scenario rates a pension kind participates
// with. Market-exposed kinds follow the household's configured rates; kinds
// with a contractual or statutory rate use it uniformly across scenarios.
func ratesForPension(p *domain.Pension, rates domain.ScenarioRates) domain.ScenarioRates {
	switch p.Kind {
	case domain.PensionETF, domain.PensionCompany:
		return rates
	case domain.PensionInsurance:
		if p.Insurance.GuaranteedRate != nil {
			return domain.Uniform(*p.Insurance.GuaranteedRate)
		}
		return rates
	case domain.PensionSavings:
		return domain.Uniform(p.Savings.InterestRate)
	case domain.PensionState:
		// statutory entitlement, no market growth
		return domain.Uniform(decimal.Zero)
	default:
		return rates
	}
}

// aggregateScenario sums one scenario's series across all pensions, aligned
// by month key. The summary figures are recomputed over the merged series so
// the totalReturns identity holds for the household as a whole.
func aggregateScenario(projections []domain.PensionProjection, t domain.ScenarioType, rate decimal.Decimal, initialTotal decimal.Decimal, start, end time.Time) *domain.ProjectionScenario {
	byMonth := make([]map[dateutil.MonthKey]domain.ProjectionDataPoint, len(projections))
	for i := range projections {
		byMonth[i] = projections[i].Scenarios.Scenario(t).ByMonth()
	}

	sc := &domain.ProjectionScenario{Type: t, ReturnRate: rate, FinalValue: initialTotal}
	if start.After(end) {
		return sc
	}

	for date := start; !date.After(end); date = dateutil.AddMonths(date, 1) {
		key := dateutil.KeyOf(date)
		point := domain.ProjectionDataPoint{
			Date:         date,
			ScenarioType: t,
			IsProjection: true,
		}
		for i := range byMonth {
			if p, ok := byMonth[i][key]; ok {
				point.Value = point.Value.Add(p.Value)
				point.ContributionAmount = point.ContributionAmount.Add(p.ContributionAmount)
				point.AccumulatedContributions = point.AccumulatedContributions.Add(p.AccumulatedContributions)
			}
		}
		sc.DataPoints = append(sc.DataPoints, point)
	}

	last := sc.DataPoints[len(sc.DataPoints)-1]
	sc.FinalValue = last.Value
	sc.TotalContributions = last.AccumulatedContributions
	sc.TotalReturns = sc.FinalValue.Sub(sc.TotalContributions).Sub(initialTotal)
	return sc
}
