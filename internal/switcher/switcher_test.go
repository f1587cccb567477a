package switcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

func run(t *testing.T, action engine.Action, req *engine.Request) ([]engine.Event, []engine.Message) {
	t.Helper()
	disp := &engine.Dispatcher{}
	events, err := action.Run(context.Background(), disp, req)
	require.NoError(t, err)
	return events, disp.Messages()
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name  string
		slots domain.Snapshot
		want  State
	}{
		{"empty", domain.Snapshot{}, Idle},
		{
			"pending switch",
			domain.Snapshot{domain.SlotNextFormName: domain.String(domain.FormTransferMoney)},
			PendingSwitchConfirmation,
		},
		{
			"suspended",
			domain.Snapshot{domain.SlotPreviousFormName: domain.String(domain.FormCCPayment)},
			Suspended,
		},
		{
			"pending shadows suspended",
			domain.Snapshot{
				domain.SlotNextFormName:     domain.String(domain.FormTransferMoney),
				domain.SlotPreviousFormName: domain.String(domain.FormCCPayment),
			},
			PendingSwitchConfirmation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Current(tt.slots))
		})
	}
}

func TestAskRecordsTarget(t *testing.T) {
	req := &engine.Request{
		Intent:     "transfer_money",
		ActiveForm: domain.FormCCPayment,
		Slots:      domain.Snapshot{},
	}

	events, messages := run(t, NewAsk(zap.NewNop()), req)

	require.Len(t, events, 1)
	assert.Equal(t, domain.SlotNextFormName, events[0].Slot)
	got, _ := events[0].Value.String()
	assert.Equal(t, domain.FormTransferMoney, got)

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "Are you sure you want to switch")
	require.Len(t, messages[0].Buttons, 2)
	assert.Equal(t, "/affirm", messages[0].Buttons[0].Payload)
	assert.Equal(t, "/deny", messages[0].Buttons[1].Payload)
}

func TestAskUnknownTargetAborts(t *testing.T) {
	req := &engine.Request{
		Intent:     "order_pizza",
		ActiveForm: domain.FormCCPayment,
		Slots:      domain.Snapshot{},
	}

	events, messages := run(t, NewAsk(zap.NewNop()), req)

	assert.Empty(t, messages)
	require.Len(t, events, 1)
	assert.Equal(t, domain.SlotNextFormName, events[0].Slot)
	assert.True(t, events[0].Value.IsAbsent())
}

func TestAffirmSuspendsActiveForm(t *testing.T) {
	req := &engine.Request{
		ActiveForm: domain.FormCCPayment,
		Slots: domain.Snapshot{
			domain.SlotNextFormName: domain.String(domain.FormTransferMoney),
		},
	}

	events, messages := run(t, NewAffirm(zap.NewNop()), req)

	require.Len(t, events, 2)
	assert.Equal(t, domain.SlotPreviousFormName, events[0].Slot)
	prev, _ := events[0].Value.String()
	assert.Equal(t, domain.FormCCPayment, prev)
	assert.Equal(t, domain.SlotNextFormName, events[1].Slot)
	assert.True(t, events[1].Value.IsAbsent())

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "switch back")
}

func TestDenyKeepsActiveForm(t *testing.T) {
	req := &engine.Request{
		ActiveForm: domain.FormCCPayment,
		Slots: domain.Snapshot{
			domain.SlotNextFormName: domain.String(domain.FormTransferMoney),
		},
	}

	events, messages := run(t, NewDeny(zap.NewNop()), req)

	require.Len(t, events, 1)
	assert.Equal(t, domain.SlotNextFormName, events[0].Slot)
	assert.True(t, events[0].Value.IsAbsent())

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "continue")
}

func TestSwitchBackAsk(t *testing.T) {
	req := &engine.Request{
		Slots: domain.Snapshot{
			domain.SlotPreviousFormName: domain.String(domain.FormCCPayment),
		},
	}

	events, messages := run(t, NewSwitchBackAsk(zap.NewNop()), req)

	require.Len(t, events, 1)
	assert.Equal(t, domain.SlotPreviousFormName, events[0].Slot)
	assert.True(t, events[0].Value.IsAbsent())

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "go back")
	require.Len(t, messages[0].Buttons, 2)
}

func TestSwitchBackAskNoSuspension(t *testing.T) {
	events, messages := run(t, NewSwitchBackAsk(zap.NewNop()), &engine.Request{Slots: domain.Snapshot{}})

	assert.Empty(t, messages)
	require.Len(t, events, 1)
	assert.True(t, events[0].Value.IsAbsent())
}
