package money

import (
	"github.com/shopspring/decimal"
)

// Amount represents a monetary amount for display purposes. Engine math stays
// on raw decimal.Decimal; output layers wrap results in Amount to get
// consistent cent rounding and formatting.
type Amount struct {
	decimal.Decimal
}

// New creates an Amount from a float64.
func New(value float64) Amount {
	return Amount{decimal.NewFromFloat(value)}
}

// FromDecimal creates an Amount from a decimal.Decimal.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d}
}

// FromString creates an Amount from a string.
func FromString(value string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d}, nil
}

// Round rounds the amount to cents using banker's rounding.
func (a Amount) Round() Amount {
	return Amount{a.Decimal.Round(2)}
}

// Add adds another amount.
func (a Amount) Add(other Amount) Amount {
	return Amount{a.Decimal.Add(other.Decimal)}
}

// Sub subtracts another amount.
func (a Amount) Sub(other Amount) Amount {
	return Amount{a.Decimal.Sub(other.Decimal)}
}

// IsNegative checks if the amount is below zero.
func (a Amount) IsNegative() bool {
	return a.Decimal.IsNegative()
}

// IsZero checks if the amount is zero.
func (a Amount) IsZero() bool {
	return a.Decimal.IsZero()
}

// Zero returns a zero amount.
func Zero() Amount {
	return Amount{decimal.Zero}
}

// Sum adds up a slice of decimals and returns the total as an Amount.
func Sum(values []decimal.Decimal) Amount {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Amount{total}
}

// String returns the amount fixed to two decimal places.
func (a Amount) String() string {
	return a.Decimal.StringFixed(2)
}

// Format renders the amount with a currency symbol prefix.
func (a Amount) Format(symbol string) string {
	return symbol + a.String()
}
