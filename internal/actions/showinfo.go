package actions

import (
	"context"
	"sort"
	"strings"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
	"github.com/tellerbot/teller/internal/forms"
)

// formPreservingEvents keep an active form undisturbed by an informational
// query: the user turn is reverted from the history, continue_form is reset
// so the form asks whether to go on, and the form is re-queued as the next
// action so the engine does not drop into listening.
func formPreservingEvents(req *engine.Request) []engine.Event {
	if req.ActiveForm == "" {
		return nil
	}
	return []engine.Event{
		engine.UserUtteranceReverted(),
		engine.ClearSlot(domain.SlotContinueForm),
		engine.FollowupAction(req.ActiveForm),
	}
}

// ShowBalance reports bank or credit card balances depending on the
// account_type slot.
type ShowBalance struct{}

// Name implements engine.Action.
func (ShowBalance) Name() string { return "action_show_balance" }

// Run implements engine.Action.
func (ShowBalance) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	accountType, _ := req.Slots.String(domain.SlotAccountType)
	if accountType == "credit" {
		showCreditBalances(disp, req)
	} else {
		showAccountBalance(disp, req)
	}
	return formPreservingEvents(req), nil
}

func showCreditBalances(disp *engine.Dispatcher, req *engine.Request) {
	cards, _ := req.Slots.Cards(domain.SlotCreditCardBalance)
	card, _ := req.Slots.String(domain.SlotCreditCard)

	utterCard := func(name string) {
		disp.Utter(engine.TemplateCreditCardBalance, map[string]string{
			domain.SlotCreditCard:    domain.TitleCase(name),
			domain.SlotAmountOfMoney: cards[name][domain.LabelCurrentBalance].StringFixed(2),
		})
	}

	if card != "" {
		key := strings.ToLower(card)
		if _, ok := cards[key]; ok {
			utterCard(key)
			return
		}
	}

	names := make([]string, 0, len(cards))
	for name := range cards {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		utterCard(name)
	}
}

func showAccountBalance(disp *engine.Dispatcher, req *engine.Request) {
	balance, _ := req.Slots.Decimal(domain.SlotAccountBalance)

	transferred, ok := req.Slots.Decimal(domain.SlotAmountTransferred)
	if ok && !transferred.IsZero() {
		disp.Utter(engine.TemplateChangedAccountBalance, map[string]string{
			"init_account_balance": balance.Add(transferred).StringFixed(2),
			domain.SlotAccountBalance: balance.StringFixed(2),
		})
		return
	}

	disp.Utter(engine.TemplateAccountBalance, map[string]string{
		"init_account_balance": balance.StringFixed(2),
	})
}

// ShowRecipients lists the contents of the known_recipients slot.
type ShowRecipients struct{}

// Name implements engine.Action.
func (ShowRecipients) Name() string { return "action_show_recipients" }

// Run implements engine.Action.
func (ShowRecipients) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	recipients, _ := req.Slots.StringList(domain.SlotKnownRecipients)
	disp.Utter(engine.TemplateRecipients, map[string]string{
		"formatted_recipients": forms.FormatRecipients(recipients),
	})
	return formPreservingEvents(req), nil
}

// ShowTransferCharge reports the static transfer charge.
type ShowTransferCharge struct{}

// Name implements engine.Action.
func (ShowTransferCharge) Name() string { return "action_show_transfer_charge" }

// Run implements engine.Action.
func (ShowTransferCharge) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	disp.Utter(engine.TemplateTransferCharge, nil)
	return formPreservingEvents(req), nil
}
