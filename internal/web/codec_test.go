package web

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

const payCCWebhook = `{
  "next_action": "validate_cc_payment_form",
  "sender_id": "dev-0",
  "tracker": {
    "slots": {
      "account_balance": 1500.00,
      "credit_card_balance": {
        "iris bank": {"current balance": 120.00, "minimum balance": 25.00}
      },
      "known_recipients": ["John Smith", "Jane Doe"],
      "transaction_history": {
        "spend": {
          "amazon": [{"date": "2023-01-05T00:00:00Z", "amount": 32.50}]
        }
      },
      "user_profile": {"id": "u1", "name": "U One"},
      "credit_card": null
    },
    "latest_message": {
      "intent": {"name": "pay_cc"},
      "entities": [
        {
          "entity": "amount-of-money",
          "text": "$50",
          "value": 50,
          "additional_info": {"type": "value", "value": 50, "unit": "$"}
        },
        {
          "entity": "time",
          "text": "last month",
          "value": "2023-01-01T00:00:00.000-00:00",
          "additional_info": {
            "type": "interval",
            "grain": "month",
            "from": {"value": "2023-01-01T00:00:00.000-00:00", "grain": "month"},
            "to": {"value": "2023-02-01T00:00:00.000-00:00", "grain": "month"}
          }
        },
        {"entity": "PERSON", "text": "John"}
      ]
    },
    "active_loop": {"name": "cc_payment_form"},
    "events": [
      {"event": "session_started", "metadata": {"userId": "u1"}},
      {"event": "action"}
    ]
  },
  "candidates": [
    {"slot": "amount-of-money", "value": "50"},
    {"slot": "credit_card", "value": "iris bank"}
  ]
}`

func decodeWebhook(t *testing.T, body string) *engine.Request {
	t.Helper()
	var wire webhookRequest
	require.NoError(t, json.Unmarshal([]byte(body), &wire))
	return wire.toEngineRequest()
}

func TestDecodeWebhookRequest(t *testing.T) {
	req := decodeWebhook(t, payCCWebhook)

	assert.Equal(t, "validate_cc_payment_form", req.Action)
	assert.Equal(t, "dev-0", req.SenderID)
	assert.Equal(t, "pay_cc", req.Intent)
	assert.Equal(t, domain.FormCCPayment, req.ActiveForm)
	assert.Equal(t, "u1", req.Metadata["userId"])

	balance, ok := req.Slots.Decimal(domain.SlotAccountBalance)
	require.True(t, ok)
	assert.Equal(t, "1500.00", balance.StringFixed(2))

	cards, ok := req.Slots.Cards(domain.SlotCreditCardBalance)
	require.True(t, ok)
	assert.Equal(t, "120.00", cards["iris bank"][domain.LabelCurrentBalance].StringFixed(2))

	recipients, ok := req.Slots.StringList(domain.SlotKnownRecipients)
	require.True(t, ok)
	assert.Equal(t, []string{"John Smith", "Jane Doe"}, recipients)

	history, ok := req.Slots.History(domain.SlotTransactionHistory)
	require.True(t, ok)
	require.Len(t, history[domain.SearchTypeSpend]["amazon"], 1)
	assert.Equal(t, "32.50", history[domain.SearchTypeSpend]["amazon"][0].Amount.StringFixed(2))

	prof, ok := req.Slot(domain.SlotUserProfile).Profile()
	require.True(t, ok)
	assert.Equal(t, "u1", prof.ID)

	// null slots decode as absent
	assert.True(t, req.Slot(domain.SlotCreditCard).IsAbsent())

	require.Len(t, req.Candidates, 2)
	assert.Equal(t, domain.SlotAmountOfMoney, req.Candidates[0].Name)
	got, _ := req.Candidates[0].Value.String()
	assert.Equal(t, "50", got)
}

func TestDecodeWebhookEntities(t *testing.T) {
	req := decodeWebhook(t, payCCWebhook)

	money := req.Entity("amount-of-money")
	require.NotNil(t, money)
	require.NotNil(t, money.Detail)
	require.NotNil(t, money.Detail.Number)
	assert.Equal(t, 50.0, *money.Detail.Number)
	assert.Equal(t, "$", money.Detail.Unit)

	interval := req.Entity("time")
	require.NotNil(t, interval)
	require.NotNil(t, interval.Detail)
	assert.Equal(t, domain.GrainMonth, interval.Detail.Grain)
	assert.Equal(t, "2023-01-01T00:00:00.000-00:00", interval.Detail.From)
	assert.Equal(t, "2023-02-01T00:00:00.000-00:00", interval.Detail.To)

	person := req.Entity("PERSON")
	require.NotNil(t, person)
	assert.Equal(t, "John", person.Text)
	assert.Nil(t, person.Detail)

	assert.Nil(t, req.Entity("number"))
}

func TestEncodeResponse(t *testing.T) {
	resp := &engine.Response{
		Events: []engine.Event{
			engine.SlotSet(domain.SlotAccountBalance, domain.String("450.00")),
			engine.ClearSlot(domain.SlotConfirm),
			engine.FollowupAction(domain.FormCCPayment),
			engine.UserUtteranceReverted(),
		},
		Messages: []engine.Message{
			{Template: engine.TemplateCCPayScheduled, Params: map[string]string{"amount-of-money": "50.00"}},
			{Text: "Are you sure?", Buttons: []engine.Button{{Payload: "/affirm", Title: "Yes"}}},
		},
	}

	out := encodeResponse(resp)
	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded struct {
		Events    []map[string]any `json:"events"`
		Responses []map[string]any `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded.Events, 4)
	assert.Equal(t, map[string]any{"event": "slot", "name": "account_balance", "value": "450.00"}, decoded.Events[0])
	assert.Equal(t, map[string]any{"event": "slot", "name": "confirm", "value": nil}, decoded.Events[1])
	assert.Equal(t, map[string]any{"event": "followup", "name": "cc_payment_form"}, decoded.Events[2])
	assert.Equal(t, map[string]any{"event": "rewind"}, decoded.Events[3])

	require.Len(t, decoded.Responses, 2)
	assert.Equal(t, engine.TemplateCCPayScheduled, decoded.Responses[0]["template"])
	assert.Equal(t, "50.00", decoded.Responses[0]["amount-of-money"])
	assert.Equal(t, "Are you sure?", decoded.Responses[1]["text"])
}

func TestEncodeSlotValueNumbersStayExact(t *testing.T) {
	req := decodeWebhook(t, payCCWebhook)
	cards := req.Slot(domain.SlotCreditCardBalance)

	raw, err := json.Marshal(encodeSlotValue(cards))
	require.NoError(t, err)
	assert.JSONEq(t, `{"iris bank": {"current balance": 120, "minimum balance": 25}}`, string(raw))
}
