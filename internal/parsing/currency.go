// Package parsing normalizes raw extracted entities into the typed money
// and time values the validators work with. Everything here is pure; a
// failed parse reports ok=false and the caller decides which corrective
// message to send.
package parsing

import (
	"github.com/shopspring/decimal"

	"github.com/tellerbot/teller/internal/domain"
)

// ParseCurrency resolves an amount-of-money (or bare number) entity into a
// typed amount. The base currency substitutes when the user named none.
// Negative and missing values fail.
func ParseCurrency(entity *domain.Entity, baseCurrency string) (domain.Amount, bool) {
	if entity == nil || entity.Detail == nil || entity.Detail.Number == nil {
		return domain.Amount{}, false
	}

	value := decimal.NewFromFloat(*entity.Detail.Number)
	if value.IsNegative() {
		return domain.Amount{}, false
	}

	currency := entity.Detail.Unit
	if currency == "" {
		currency = baseCurrency
	}

	return domain.Amount{Value: value, Currency: currency}, true
}
