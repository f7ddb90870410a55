package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pensionfolio/pensionfolio/pkg/dateutil"
)

// PensionKind discriminates the pension variants. Exactly one of the detail
// pointers on Pension must be set, and it must match the kind; consumers
// switch exhaustively on Kind instead of probing for field presence.
type PensionKind string

const (
	PensionETF       PensionKind = "etf"
	PensionInsurance PensionKind = "insurance"
	PensionCompany   PensionKind = "company"
	PensionSavings   PensionKind = "savings"
	PensionState     PensionKind = "state"
)

// Valid reports whether the kind is a known pension variant.
func (k PensionKind) Valid() bool {
	switch k {
	case PensionETF, PensionInsurance, PensionCompany, PensionSavings, PensionState:
		return true
	}
	return false
}

// ETFDetails describes an ETF savings plan pension.
type ETFDetails struct {
	ISIN          string `yaml:"isin" json:"isin"`
	AutoRebalance bool   `yaml:"auto_rebalance,omitempty" json:"auto_rebalance,omitempty"`
}

// InsuranceDetails describes a private pension insurance contract.
type InsuranceDetails struct {
	Provider       string           `yaml:"provider" json:"provider"`
	ContractNumber string           `yaml:"contract_number,omitempty" json:"contract_number,omitempty"`
	GuaranteedRate *decimal.Decimal `yaml:"guaranteed_rate,omitempty" json:"guaranteed_rate,omitempty"` // annual percent
}

// CompanyDetails describes an employer-sponsored pension.
type CompanyDetails struct {
	Employer     string `yaml:"employer" json:"employer"`
	VestingYears int    `yaml:"vesting_years,omitempty" json:"vesting_years,omitempty"`
}

// SavingsDetails describes a plain savings-based pension.
type SavingsDetails struct {
	InterestRate decimal.Decimal `yaml:"interest_rate" json:"interest_rate"` // annual percent
}

// StateDetails describes a statutory state pension entitlement.
type StateDetails struct {
	MonthlyPayout decimal.Decimal `yaml:"monthly_payout,omitempty" json:"monthly_payout,omitempty"`
	StartAge      int             `yaml:"start_age,omitempty" json:"start_age,omitempty"`
}

// Pension is one retirement plan attached to a household member.
type Pension struct {
	ID           string          `yaml:"id" json:"id"`
	Name         string          `yaml:"name" json:"name"`
	Kind         PensionKind     `yaml:"kind" json:"kind"`
	MemberID     string          `yaml:"member_id" json:"member_id"`
	StartDate    time.Time       `yaml:"start_date" json:"start_date"`
	CurrentValue decimal.Decimal `yaml:"current_value" json:"current_value"`

	ContributionPlan        []ContributionStep       `yaml:"contribution_plan,omitempty" json:"contribution_plan,omitempty"`
	HistoricalContributions []HistoricalContribution `yaml:"historical_contributions,omitempty" json:"historical_contributions,omitempty"`

	ETF       *ETFDetails       `yaml:"etf,omitempty" json:"etf,omitempty"`
	Insurance *InsuranceDetails `yaml:"insurance,omitempty" json:"insurance,omitempty"`
	Company   *CompanyDetails   `yaml:"company,omitempty" json:"company,omitempty"`
	Savings   *SavingsDetails   `yaml:"savings,omitempty" json:"savings,omitempty"`
	State     *StateDetails     `yaml:"state,omitempty" json:"state,omitempty"`
}

// Validate checks the pension's invariants: known kind, detail payload
// matching the kind (and only that one), non-negative balance, and
// well-formed contribution plan entries.
func (p *Pension) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pension id is required")
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("pension %s: unknown kind %q", p.ID, p.Kind)
	}
	if p.CurrentValue.IsNegative() {
		return fmt.Errorf("pension %s: current value cannot be negative", p.ID)
	}

	details := map[PensionKind]bool{
		PensionETF:       p.ETF != nil,
		PensionInsurance: p.Insurance != nil,
		PensionCompany:   p.Company != nil,
		PensionSavings:   p.Savings != nil,
		PensionState:     p.State != nil,
	}
	for kind, present := range details {
		if kind == p.Kind && !present {
			return fmt.Errorf("pension %s: kind %q requires matching %s details", p.ID, p.Kind, kind)
		}
		if kind != p.Kind && present {
			return fmt.Errorf("pension %s: %s details set on a %q pension", p.ID, kind, p.Kind)
		}
	}

	if p.Kind == PensionInsurance && p.Insurance.GuaranteedRate != nil {
		rate := *p.Insurance.GuaranteedRate
		if rate.LessThan(decimal.NewFromInt(-100)) || rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("pension %s: guaranteed rate must be between -100 and 100 percent", p.ID)
		}
	}

	for i := range p.ContributionPlan {
		if err := p.ContributionPlan[i].Validate(); err != nil {
			return fmt.Errorf("pension %s: contribution step %d: %w", p.ID, i, err)
		}
	}
	return nil
}

// Member is one person in the household.
type Member struct {
	ID            string    `yaml:"id" json:"id"`
	Name          string    `yaml:"name" json:"name"`
	BirthDate     time.Time `yaml:"birth_date" json:"birth_date"`
	RetirementAge int       `yaml:"retirement_age" json:"retirement_age"`
}

// RetirementDate returns the first of the month in which the member reaches
// their configured retirement age.
func (m *Member) RetirementDate() time.Time {
	return dateutil.StartOfMonth(m.BirthDate.AddDate(m.RetirementAge, 0, 0))
}

// Validate checks the member's required fields.
func (m *Member) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("member id is required")
	}
	if m.BirthDate.IsZero() {
		return fmt.Errorf("member %s: birth date is required", m.ID)
	}
	if m.RetirementAge < 50 || m.RetirementAge > 80 {
		return fmt.Errorf("member %s: retirement age must be between 50 and 80, got %d", m.ID, m.RetirementAge)
	}
	return nil
}

// Household groups members and the pensions attached to them.
type Household struct {
	Members  []Member  `yaml:"members" json:"members"`
	Pensions []Pension `yaml:"pensions" json:"pensions"`
}

// Member looks up a member by ID.
func (h *Household) Member(id string) (*Member, bool) {
	for i := range h.Members {
		if h.Members[i].ID == id {
			return &h.Members[i], true
		}
	}
	return nil, false
}

// PensionsForMember returns pensions attached to the given member.
func (h *Household) PensionsForMember(memberID string) []Pension {
	var out []Pension
	for _, p := range h.Pensions {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the household: valid members, valid pensions, and every
// pension attached to an existing member.
func (h *Household) Validate() error {
	if len(h.Members) == 0 {
		return fmt.Errorf("household has no members")
	}
	seen := make(map[string]bool, len(h.Members))
	for i := range h.Members {
		if err := h.Members[i].Validate(); err != nil {
			return err
		}
		if seen[h.Members[i].ID] {
			return fmt.Errorf("duplicate member id %q", h.Members[i].ID)
		}
		seen[h.Members[i].ID] = true
	}
	pensionIDs := make(map[string]bool, len(h.Pensions))
	for i := range h.Pensions {
		p := &h.Pensions[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if pensionIDs[p.ID] {
			return fmt.Errorf("duplicate pension id %q", p.ID)
		}
		pensionIDs[p.ID] = true
		if _, ok := h.Member(p.MemberID); !ok {
			return fmt.Errorf("pension %s references unknown member %q", p.ID, p.MemberID)
		}
	}
	return nil
}

// PensionProjection is the three-scenario projection of a single pension.
type PensionProjection struct {
	PensionID   string      `json:"pension_id"`
	PensionName string      `json:"pension_name"`
	Kind        PensionKind `json:"kind"`
	MemberID    string      `json:"member_id"`
	Scenarios   ScenarioSet `json:"scenarios"`
}

// HouseholdProjection aggregates every pension projection of a household plus
// per-scenario household totals aligned by calendar month.
type HouseholdProjection struct {
	StartDate time.Time           `json:"start_date"`
	EndDate   time.Time           `json:"end_date"`
	Rates     ScenarioRates       `json:"rates"`
	Pensions  []PensionProjection `json:"pensions"`
	Totals    ScenarioSet         `json:"totals"`
}
