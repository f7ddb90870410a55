package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pensionfolio/pensionfolio/internal/domain"
	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

// Configuration is the top-level structure of a portfolio file.
type Configuration struct {
	Household domain.Household     `yaml:"household" json:"household"`
	Rates     domain.ScenarioRates `yaml:"scenario_rates" json:"scenario_rates"`
	StartDate time.Time            `yaml:"start_date" json:"start_date"`
	// EndDate is optional; when absent the projection runs to the latest
	// member retirement date.
	EndDate time.Time `yaml:"end_date,omitempty" json:"end_date,omitempty"`
}

// EffectiveEndDate returns the configured end date, falling back to the
// latest retirement date across household members.
func (c *Configuration) EffectiveEndDate() time.Time {
	if !c.EndDate.IsZero() {
		return dateutil.StartOfMonth(c.EndDate)
	}
	var latest time.Time
	for _, m := range c.Household.Members {
		if rd := m.RetirementDate(); rd.After(latest) {
			latest = rd
		}
	}
	return latest
}

// InputParser handles parsing of portfolio configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a portfolio configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes and validates a portfolio configuration from raw YAML
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if err := config.Household.Validate(); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}

	if err := config.Rates.Validate(); err != nil {
		return fmt.Errorf("scenario rates validation failed: %w", err)
	}

	if config.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}

	end := config.EffectiveEndDate()
	if end.IsZero() {
		return fmt.Errorf("end date is required when no member retirement date can be derived")
	}
	if dateutil.StartOfMonth(config.StartDate).After(end) {
		return fmt.Errorf("start date %s is after end date %s",
			config.StartDate.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return nil
}

// CreateExampleConfiguration creates an example portfolio configuration
func (ip *InputParser) CreateExampleConfiguration() *Configuration {
	birthDate, _ := time.Parse("2006-01-02", "1985-04-12")
	etfStart, _ := time.Parse("2006-01-02", "2020-01-01")
	savingsStart, _ := time.Parse("2006-01-02", "2018-06-01")
	projectionStart, _ := time.Parse("2006-01-02", "2025-01-01")
	planEnd, _ := time.Parse("2006-01-02", "2040-12-01")

	guaranteed := decimal.NewFromFloat(1.25)

	return &Configuration{
		Household: domain.Household{
			Members: []domain.Member{
				{
					ID:            "alex",
					Name:          "Alex",
					BirthDate:     birthDate,
					RetirementAge: 67,
				},
			},
			Pensions: []domain.Pension{
				{
					ID:           "etf-world",
					Name:         "Global Equity ETF",
					Kind:         domain.PensionETF,
					MemberID:     "alex",
					StartDate:    etfStart,
					CurrentValue: decimal.NewFromInt(42000),
					ContributionPlan: []domain.ContributionStep{
						{
							Amount:    decimal.NewFromInt(350),
							Frequency: domain.FrequencyMonthly,
							StartDate: etfStart,
						},
						{
							Amount:    decimal.NewFromInt(2000),
							Frequency: domain.FrequencyAnnually,
							StartDate: etfStart,
							EndDate:   &planEnd,
						},
					},
					ETF: &domain.ETFDetails{
						ISIN:          "IE00B4L5Y983",
						AutoRebalance: true,
					},
				},
				{
					ID:           "riester",
					Name:         "Guaranteed Insurance Plan",
					Kind:         domain.PensionInsurance,
					MemberID:     "alex",
					StartDate:    savingsStart,
					CurrentValue: decimal.NewFromInt(15500),
					ContributionPlan: []domain.ContributionStep{
						{
							Amount:    decimal.NewFromInt(160),
							Frequency: domain.FrequencyMonthly,
							StartDate: savingsStart,
						},
					},
					Insurance: &domain.InsuranceDetails{
						Provider:       "Allianz",
						ContractNumber: "RV-2018-443",
						GuaranteedRate: &guaranteed,
					},
				},
			},
		},
		Rates: domain.ScenarioRates{
			Pessimistic: decimal.NewFromInt(2),
			Realistic:   decimal.NewFromInt(5),
			Optimistic:  decimal.NewFromInt(8),
		},
		StartDate: projectionStart,
	}
}
