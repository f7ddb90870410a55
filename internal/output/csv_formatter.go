package output

import (
	"bytes"
	"encoding/csv"

	"github.com/pensionfolio/pensionfolio/internal/domain"
	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

// CSVFormatter emits one row per projected month with the household totals
// for all three scenarios side by side.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(projection *domain.HouseholdProjection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "Pessimistic", "Realistic", "Optimistic", "Contribution", "AccumulatedContributions"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	byMonth := make(map[domain.ScenarioType]map[dateutil.MonthKey]domain.ProjectionDataPoint, len(domain.ScenarioTypes))
	for _, st := range domain.ScenarioTypes {
		if sc := projection.Totals.Scenario(st); sc != nil {
			byMonth[st] = sc.ByMonth()
		}
	}

	start := dateutil.StartOfMonth(projection.StartDate)
	end := dateutil.StartOfMonth(projection.EndDate)
	for date := start; !date.After(end); date = dateutil.AddMonths(date, 1) {
		key := dateutil.KeyOf(date)
		realistic := byMonth[domain.ScenarioRealistic][key]
		row := []string{
			string(key),
			byMonth[domain.ScenarioPessimistic][key].Value.StringFixed(2),
			realistic.Value.StringFixed(2),
			byMonth[domain.ScenarioOptimistic][key].Value.StringFixed(2),
			realistic.ContributionAmount.StringFixed(2),
			realistic.AccumulatedContributions.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
