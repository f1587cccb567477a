package domain

import "github.com/shopspring/decimal"

// Amount is a monetary value with its currency marker. Comparisons always
// use the exact decimal; StringFixed is display only.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// StringFixed formats the amount with two fraction digits.
func (a Amount) StringFixed() string {
	return a.Value.StringFixed(2)
}
