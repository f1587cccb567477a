package forms

import (
	"strings"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

type transferMoney struct {
	rules AmountRules
}

// NewTransferMoneyValidation builds the validation action for
// transfer_money_form.
func NewTransferMoneyValidation(rules AmountRules) *ValidationAction {
	f := &transferMoney{rules: rules}
	return &ValidationAction{
		name: "validate_transfer_money_form",
		validators: map[string]slotValidator{
			domain.SlotPerson:        f.validateRecipient,
			domain.SlotAmountOfMoney: f.validateAmount,
			domain.SlotConfirm:       validateConfirm,
		},
		explainers: map[string]slotExplainer{
			domain.SlotPerson: explainRecipients,
		},
	}
}

// validateRecipient resolves the extracted name against known recipients.
// Extraction may yield several PERSON hits; the first one wins. A bare
// first name resolves to the matching recipient's full name.
func (f *transferMoney) validateRecipient(candidate domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap {
	raw, _ := candidate.String()
	if list, ok := candidate.StringList(); ok && len(list) > 0 {
		raw = list[0]
	}

	name := domain.TitleCase(raw)
	recipients, _ := req.Slots.StringList(domain.SlotKnownRecipients)

	for _, recipient := range recipients {
		if name == recipient {
			return SlotMap{domain.SlotPerson: domain.String(recipient)}
		}
	}
	for _, recipient := range recipients {
		if first := strings.Fields(recipient); len(first) > 0 && name == first[0] {
			return SlotMap{domain.SlotPerson: domain.String(recipient)}
		}
	}

	disp.Utter(engine.TemplateUnknownRecipient, map[string]string{
		domain.SlotPerson: raw,
	})
	return rejected(domain.SlotPerson)
}

// validateAmount applies the same currency and balance rules as the credit
// card form, without the keyword fallback.
func (f *transferMoney) validateAmount(_ domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap {
	amount, ok := f.rules.amountFromEntities(req)
	if !ok {
		disp.Utter(engine.TemplateNoPaymentAmount, nil)
		return rejected(domain.SlotAmountOfMoney)
	}
	if !checkFunds(amount.Value, req, disp) {
		return rejected(domain.SlotAmountOfMoney)
	}

	return SlotMap{
		domain.SlotAmountOfMoney: domain.String(amount.StringFixed()),
		domain.SlotCurrency:      domain.String(amount.Currency),
	}
}

// explainRecipients lists the names money can be sent to.
func explainRecipients(disp *engine.Dispatcher, req *engine.Request) {
	recipients, _ := req.Slots.StringList(domain.SlotKnownRecipients)
	disp.Utter(engine.TemplateRecipients, map[string]string{
		"formatted_recipients": FormatRecipients(recipients),
	})
}

// FormatRecipients renders recipients as a bulleted list for message
// parameters. Shared with the show-recipients action.
func FormatRecipients(recipients []string) string {
	var b strings.Builder
	for _, r := range recipients {
		b.WriteString("\n- ")
		b.WriteString(r)
	}
	return b.String()
}
