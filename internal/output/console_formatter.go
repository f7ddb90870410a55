package output

import (
	"bytes"
	"fmt"

	"github.com/pensionfolio/pensionfolio/internal/domain"
	"github.com/pensionfolio/pensionfolio/pkg/money"
)

// ConsoleFormatter renders a concise per-pension and household summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(projection *domain.HouseholdProjection) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PENSION PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Window: %s .. %s\n",
		projection.StartDate.Format("2006-01"), projection.EndDate.Format("2006-01"))
	fmt.Fprintf(&buf, "Annual rates: pessimistic=%s%% realistic=%s%% optimistic=%s%%\n",
		projection.Rates.Pessimistic.StringFixed(2),
		projection.Rates.Realistic.StringFixed(2),
		projection.Rates.Optimistic.StringFixed(2))
	fmt.Fprintln(&buf)

	for _, pp := range projection.Pensions {
		fmt.Fprintf(&buf, "%s (%s, member %s)\n", pp.PensionName, pp.Kind, pp.MemberID)
		c.writeScenarioLines(&buf, &pp.Scenarios)
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "HOUSEHOLD TOTALS")
	c.writeScenarioLines(&buf, &projection.Totals)
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeScenarioLines(buf *bytes.Buffer, set *domain.ScenarioSet) {
	for _, st := range domain.ScenarioTypes {
		sc := set.Scenario(st)
		if sc == nil {
			continue
		}
		fmt.Fprintf(buf, "  %-11s final=%s contributions=%s returns=%s\n",
			st,
			money.FromDecimal(sc.FinalValue).Format("€"),
			money.FromDecimal(sc.TotalContributions).Format("€"),
			money.FromDecimal(sc.TotalReturns).Format("€"))
	}
}
