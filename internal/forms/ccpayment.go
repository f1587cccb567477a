package forms

import (
	"sort"
	"strings"
	"time"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
	"github.com/tellerbot/teller/internal/parsing"
)

type ccPayment struct {
	rules AmountRules
}

// NewCCPaymentValidation builds the validation action for cc_payment_form.
func NewCCPaymentValidation(rules AmountRules) *ValidationAction {
	f := &ccPayment{rules: rules}
	return &ValidationAction{
		name: "validate_cc_payment_form",
		validators: map[string]slotValidator{
			domain.SlotAmountOfMoney: f.validateAmount,
			domain.SlotCreditCard:    f.validateCreditCard,
			domain.SlotTime:          f.validateTime,
			domain.SlotConfirm:       validateConfirm,
		},
		explainers: map[string]slotExplainer{
			domain.SlotCreditCard: explainCreditCards,
		},
	}
}

// validateAmount tries the currency entity first, then falls back to the
// keyword path against the selected card's stored balances. Either way the
// resolved amount must not exceed the account balance.
func (f *ccPayment) validateAmount(candidate domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap {
	if amount, ok := f.rules.amountFromEntities(req); ok {
		if !checkFunds(amount.Value, req, disp) {
			return rejected(domain.SlotAmountOfMoney)
		}
		return SlotMap{
			domain.SlotAmountOfMoney: domain.String(amount.StringFixed()),
			domain.SlotCurrency:      domain.String(amount.Currency),
		}
	}

	if m := f.keywordAmount(candidate, disp, req); m != nil {
		return m
	}

	disp.Utter(engine.TemplateNoPaymentAmount, nil)
	return rejected(domain.SlotAmountOfMoney)
}

// keywordAmount resolves "minimum"/"balance" style keywords against the
// selected credit card. Returns nil when the keyword matches nothing, so
// the caller can emit the generic rejection.
func (f *ccPayment) keywordAmount(candidate domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap {
	keyword, ok := candidate.String()
	if !ok || keyword == "" {
		return nil
	}

	card, _ := req.Slots.String(domain.SlotCreditCard)
	cards, _ := req.Slots.Cards(domain.SlotCreditCardBalance)
	balances, ok := cards[strings.ToLower(card)]
	if !ok {
		return nil
	}

	label := f.rules.balanceLabel(keyword)
	amount, ok := balances[label]
	if !ok {
		return nil
	}

	if !checkFunds(amount, req, disp) {
		return rejected(domain.SlotAmountOfMoney)
	}
	return SlotMap{
		domain.SlotAmountOfMoney:     domain.String(amount.StringFixed(2)),
		domain.SlotPaymentAmountType: domain.String(" (your " + label + ")"),
		domain.SlotCurrency:          domain.String(f.rules.BaseCurrency),
	}
}

// validateCreditCard matches the card name case-insensitively against the
// stored cards and normalizes it to title case.
func (f *ccPayment) validateCreditCard(candidate domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap {
	cards, _ := req.Slots.Cards(domain.SlotCreditCardBalance)
	value, _ := candidate.String()
	if value != "" {
		if _, ok := cards[strings.ToLower(value)]; ok {
			return SlotMap{domain.SlotCreditCard: domain.String(domain.TitleCase(value))}
		}
	}

	disp.Utter(engine.TemplateNoCreditCard, nil)
	return rejected(domain.SlotCreditCard)
}

// validateTime requires a single instant; interval-valued entities are
// rejected for a payment date.
func (f *ccPayment) validateTime(_ domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap {
	point, ok := parsing.ParseTimePoint(req.Entity(domain.SlotTime))
	if !ok {
		disp.Utter(engine.TemplateNoTransactDate, nil)
		return rejected(domain.SlotTime)
	}

	return SlotMap{
		domain.SlotTime:          domain.String(point.At.Format(time.RFC3339)),
		domain.SlotTimeFormatted: domain.String(point.Formatted),
		domain.SlotGrain:         domain.String(string(point.Grain)),
	}
}

// explainCreditCards lists the user's cards with their current balances.
func explainCreditCards(disp *engine.Dispatcher, req *engine.Request) {
	disp.UtterText("You have the following credits cards:")

	cards, _ := req.Slots.Cards(domain.SlotCreditCardBalance)
	names := make([]string, 0, len(cards))
	for name := range cards {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		disp.Utter(engine.TemplateCreditCardBalance, map[string]string{
			domain.SlotCreditCard:    domain.TitleCase(name),
			domain.SlotAmountOfMoney: cards[name][domain.LabelCurrentBalance].StringFixed(2),
		})
	}
}
