// Package actions implements the assistant's custom actions: the
// transaction executors that mutate account state after a confirmed form,
// the informational queries that must not disturb an active form, and
// session bootstrap. Executors only act on confirm == "yes"; every run,
// confirmed or cancelled, resets the form's working slots so the next
// invocation starts clean.
package actions

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

// ccPaymentWorkingSlots are cleared on every run of the pay action.
var ccPaymentWorkingSlots = []string{
	domain.SlotContinueForm,
	domain.SlotConfirm,
	domain.SlotCreditCard,
	domain.SlotAccountType,
	domain.SlotAmountOfMoney,
	domain.SlotTime,
	domain.SlotTimeFormatted,
	domain.SlotStartTime,
	domain.SlotEndTime,
	domain.SlotStartTimeFormatted,
	domain.SlotEndTimeFormatted,
	domain.SlotGrain,
	domain.SlotNumber,
}

func clearEvents(slots []string) []engine.Event {
	events := make([]engine.Event, 0, len(slots))
	for _, name := range slots {
		events = append(events, engine.ClearSlot(name))
	}
	return events
}

// PayCC schedules a confirmed credit card payment.
type PayCC struct {
	logger *zap.Logger
}

// NewPayCC builds the pay-credit-card executor.
func NewPayCC(logger *zap.Logger) *PayCC {
	return &PayCC{logger: logger}
}

// Name implements engine.Action.
func (a *PayCC) Name() string { return "action_pay_cc" }

// Run implements engine.Action. The subtraction runs on exact decimals; the
// balances written back for display are formatted to two fraction digits.
func (a *PayCC) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	events := clearEvents(ccPaymentWorkingSlots)

	if confirm, _ := req.Slots.String(domain.SlotConfirm); confirm != "yes" {
		disp.Utter(engine.TemplateCCPayCancelled, nil)
		return events, nil
	}

	balance, okBalance := req.Slots.Decimal(domain.SlotAccountBalance)
	amount, okAmount := req.Slots.Decimal(domain.SlotAmountOfMoney)
	transferred, _ := req.Slots.Decimal(domain.SlotAmountTransferred)
	card, _ := req.Slots.String(domain.SlotCreditCard)
	cards, okCards := req.Slots.Cards(domain.SlotCreditCardBalance)
	cardKey := strings.ToLower(card)

	if !okBalance || !okAmount || !okCards {
		a.logger.Error("pay_cc invoked without validated slots",
			zap.Bool("account_balance", okBalance),
			zap.Bool("amount", okAmount),
			zap.Bool("cards", okCards))
		disp.Utter(engine.TemplateCCPayCancelled, nil)
		return events, nil
	}
	if _, ok := cards[cardKey]; !ok {
		a.logger.Error("pay_cc invoked with unknown card", zap.String("credit_card", card))
		disp.Utter(engine.TemplateCCPayCancelled, nil)
		return events, nil
	}

	updated := cards.Clone()
	updated[cardKey][domain.LabelCurrentBalance] = updated[cardKey][domain.LabelCurrentBalance].Sub(amount)

	disp.Utter(engine.TemplateCCPayScheduled, nil)

	events = append(events,
		engine.SlotSet(domain.SlotAmountTransferred, domain.String(transferred.Add(amount).StringFixed(2))),
		engine.SlotSet(domain.SlotAccountBalance, domain.String(balance.Sub(amount).StringFixed(2))),
		engine.SlotSet(domain.SlotCreditCardBalance, domain.CardsValue(updated)),
	)
	return events, nil
}
