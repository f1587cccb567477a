package actions

import (
	"context"

	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

var transferWorkingSlots = []string{
	domain.SlotContinueForm,
	domain.SlotConfirm,
	domain.SlotPerson,
	domain.SlotAmountOfMoney,
	domain.SlotNumber,
}

// TransferMoney executes a confirmed money transfer.
type TransferMoney struct {
	logger *zap.Logger
}

// NewTransferMoney builds the transfer executor.
func NewTransferMoney(logger *zap.Logger) *TransferMoney {
	return &TransferMoney{logger: logger}
}

// Name implements engine.Action.
func (a *TransferMoney) Name() string { return "action_transfer_money" }

// Run implements engine.Action.
func (a *TransferMoney) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	events := clearEvents(transferWorkingSlots)

	if confirm, _ := req.Slots.String(domain.SlotConfirm); confirm != "yes" {
		disp.Utter(engine.TemplateTransferCancelled, nil)
		return events, nil
	}

	balance, okBalance := req.Slots.Decimal(domain.SlotAccountBalance)
	amount, okAmount := req.Slots.Decimal(domain.SlotAmountOfMoney)
	transferred, _ := req.Slots.Decimal(domain.SlotAmountTransferred)

	if !okBalance || !okAmount {
		a.logger.Error("transfer_money invoked without validated slots",
			zap.Bool("account_balance", okBalance),
			zap.Bool("amount", okAmount))
		disp.Utter(engine.TemplateTransferCancelled, nil)
		return events, nil
	}

	disp.Utter(engine.TemplateTransferComplete, nil)

	events = append(events,
		engine.SlotSet(domain.SlotAmountTransferred, domain.String(transferred.Add(amount).StringFixed(2))),
		engine.SlotSet(domain.SlotAccountBalance, domain.String(balance.Sub(amount).StringFixed(2))),
	)
	return events, nil
}
