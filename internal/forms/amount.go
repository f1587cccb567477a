package forms

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
	"github.com/tellerbot/teller/internal/parsing"
)

// AmountRules configures how spoken amounts resolve: the currency assumed
// when the user names none, and the keyword table mapping amount keywords
// ("minimum", "balance") onto stored balance labels.
type AmountRules struct {
	BaseCurrency  string
	KeywordLabels map[string]string
}

// DefaultAmountRules is the assistant's stock configuration.
func DefaultAmountRules() AmountRules {
	return AmountRules{
		BaseCurrency: "$",
		KeywordLabels: map[string]string{
			"minimum": domain.LabelMinimumBalance,
			"balance": domain.LabelCurrentBalance,
		},
	}
}

// amountFromEntities resolves the extracted amount-of-money (or bare
// number) entity into a typed amount.
func (r AmountRules) amountFromEntities(req *engine.Request) (domain.Amount, bool) {
	entity := req.Entity(domain.SlotAmountOfMoney)
	if entity == nil {
		entity = req.Entity(domain.SlotNumber)
	}
	return parsing.ParseCurrency(entity, r.BaseCurrency)
}

// balanceLabel maps a spoken keyword onto a stored balance label. Keywords
// outside the table fall through to the label itself, so "current balance"
// spoken verbatim still resolves.
func (r AmountRules) balanceLabel(keyword string) string {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if label, ok := r.KeywordLabels[k]; ok {
		return label
	}
	return k
}

// checkFunds rejects the amount with the insufficient-funds message when it
// exceeds the account balance.
func checkFunds(amount decimal.Decimal, req *engine.Request, disp *engine.Dispatcher) bool {
	balance, ok := req.Slots.Decimal(domain.SlotAccountBalance)
	if !ok || balance.LessThan(amount) {
		disp.Utter(engine.TemplateInsufficientFunds, nil)
		return false
	}
	return true
}
