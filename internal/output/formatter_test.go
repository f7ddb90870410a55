package output

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensionfolio/pensionfolio/internal/domain"
)

func sampleProjection() *domain.HouseholdProjection {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	scenario := func(st domain.ScenarioType, rate int64) *domain.ProjectionScenario {
		points := []domain.ProjectionDataPoint{
			{
				Date:                     start,
				Value:                    decimal.NewFromInt(1100),
				ContributionAmount:       decimal.NewFromInt(100),
				AccumulatedContributions: decimal.NewFromInt(100),
				ScenarioType:             st,
				IsProjection:             true,
			},
			{
				Date:                     end,
				Value:                    decimal.NewFromInt(1200),
				ContributionAmount:       decimal.NewFromInt(100),
				AccumulatedContributions: decimal.NewFromInt(200),
				ScenarioType:             st,
				IsProjection:             true,
			},
		}
		return &domain.ProjectionScenario{
			Type:               st,
			DataPoints:         points,
			ReturnRate:         decimal.NewFromInt(rate),
			FinalValue:         decimal.NewFromInt(1200),
			TotalContributions: decimal.NewFromInt(200),
			TotalReturns:       decimal.NewFromInt(0),
		}
	}

	set := domain.ScenarioSet{
		Pessimistic: scenario(domain.ScenarioPessimistic, 2),
		Realistic:   scenario(domain.ScenarioRealistic, 5),
		Optimistic:  scenario(domain.ScenarioOptimistic, 8),
	}

	return &domain.HouseholdProjection{
		StartDate: start,
		EndDate:   end,
		Rates: domain.ScenarioRates{
			Pessimistic: decimal.NewFromInt(2),
			Realistic:   decimal.NewFromInt(5),
			Optimistic:  decimal.NewFromInt(8),
		},
		Pensions: []domain.PensionProjection{
			{
				PensionID:   "etf-world",
				PensionName: "Global Equity ETF",
				Kind:        domain.PensionETF,
				MemberID:    "alex",
				Scenarios:   set,
			},
		},
		Totals: set,
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
	}{
		{"canonical console", "console", "console"},
		{"canonical csv", "csv", "csv"},
		{"canonical json", "json", "json"},
		{"alias table", "table", "console"},
		{"alias json-pretty", "JSON-Pretty", "json"},
		{"whitespace tolerated", "  csv-monthly ", "csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.input)
			require.NotNil(t, f)
			assert.Equal(t, tt.wantName, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("xml"))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "csv", "json"}, names)
	assert.NotEmpty(t, AvailableFormatAliases())
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleProjection())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "pensions")
	assert.Contains(t, decoded, "totals")

	pensions, ok := decoded["pensions"].([]interface{})
	require.True(t, ok)
	require.Len(t, pensions, 1)
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleProjection())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + two months

	assert.Equal(t, []string{"Month", "Pessimistic", "Realistic", "Optimistic", "Contribution", "AccumulatedContributions"}, records[0])
	assert.Equal(t, []string{"2025-01", "1100.00", "1100.00", "1100.00", "100.00", "100.00"}, records[1])
	assert.Equal(t, "2025-02", records[2][0])
	assert.Equal(t, "200.00", records[2][5])
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleProjection())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "PENSION PROJECTION SUMMARY")
	assert.Contains(t, out, "Window: 2025-01 .. 2025-02")
	assert.Contains(t, out, "Global Equity ETF (etf, member alex)")
	assert.Contains(t, out, "HOUSEHOLD TOTALS")
	assert.Contains(t, out, "realistic")
	assert.Contains(t, out, "€1200.00")
}

func TestFormatterFunc(t *testing.T) {
	ff := FormatterFunc{
		ID: "probe",
		F: func(p *domain.HouseholdProjection) ([]byte, error) {
			return []byte(p.Pensions[0].PensionID), nil
		},
	}
	assert.Equal(t, "probe", ff.Name())
	data, err := ff.Format(sampleProjection())
	require.NoError(t, err)
	assert.Equal(t, "etf-world", string(data))
}
