package actions

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

func TestTransferMoneyConfirmed(t *testing.T) {
	slots := domain.Snapshot{
		domain.SlotAccountBalance:    domain.Decimal(amt(t, "1500.00")),
		domain.SlotAmountTransferred: domain.Decimal(decimal.Zero),
		domain.SlotPerson:            domain.String("John Smith"),
		domain.SlotAmountOfMoney:     domain.String("200.00"),
		domain.SlotConfirm:           domain.String("yes"),
	}

	events, messages := runAction(t, NewTransferMoney(zap.NewNop()), &engine.Request{Slots: slots})

	require.Len(t, messages, 1)
	assert.Equal(t, engine.TemplateTransferComplete, messages[0].Template)

	balance, _ := eventValue(t, events, domain.SlotAccountBalance).String()
	assert.Equal(t, "1300.00", balance)
	transferred, _ := eventValue(t, events, domain.SlotAmountTransferred).String()
	assert.Equal(t, "200.00", transferred)

	assert.True(t, eventValue(t, events, domain.SlotPerson).IsAbsent())
	assert.True(t, eventValue(t, events, domain.SlotConfirm).IsAbsent())
}

func TestTransferMoneyAccumulatesTransferred(t *testing.T) {
	slots := domain.Snapshot{
		domain.SlotAccountBalance:    domain.String("1300.00"),
		domain.SlotAmountTransferred: domain.String("200.00"),
		domain.SlotAmountOfMoney:     domain.String("50.00"),
		domain.SlotConfirm:           domain.String("yes"),
	}

	events, _ := runAction(t, NewTransferMoney(zap.NewNop()), &engine.Request{Slots: slots})

	transferred, _ := eventValue(t, events, domain.SlotAmountTransferred).String()
	assert.Equal(t, "250.00", transferred)
	balance, _ := eventValue(t, events, domain.SlotAccountBalance).String()
	assert.Equal(t, "1250.00", balance)
}

func TestTransferMoneyCancelled(t *testing.T) {
	slots := domain.Snapshot{
		domain.SlotAccountBalance: domain.Decimal(amt(t, "1500.00")),
		domain.SlotAmountOfMoney:  domain.String("200.00"),
		domain.SlotConfirm:        domain.String("no"),
	}

	events, messages := runAction(t, NewTransferMoney(zap.NewNop()), &engine.Request{Slots: slots})

	require.Len(t, messages, 1)
	assert.Equal(t, engine.TemplateTransferCancelled, messages[0].Template)
	for _, ev := range events {
		assert.True(t, ev.Value.IsAbsent())
	}
}
