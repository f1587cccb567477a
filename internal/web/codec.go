package web

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

// Wire shapes of the dialogue engine's webhook. Slot and entity values are
// decoded into the typed union here, at the boundary, so nothing past this
// package touches raw JSON.

type webhookRequest struct {
	NextAction string             `json:"next_action"`
	SenderID   string             `json:"sender_id"`
	Tracker    trackerPayload     `json:"tracker"`
	Candidates []candidatePayload `json:"candidates,omitempty"`
}

type trackerPayload struct {
	Slots         map[string]json.RawMessage `json:"slots"`
	LatestMessage latestMessage              `json:"latest_message"`
	ActiveLoop    activeLoop                 `json:"active_loop"`
	Events        []trackerEvent             `json:"events"`
}

type latestMessage struct {
	Intent   intentPayload   `json:"intent"`
	Entities []entityPayload `json:"entities"`
}

type intentPayload struct {
	Name string `json:"name"`
}

type activeLoop struct {
	Name string `json:"name"`
}

type trackerEvent struct {
	Event    string            `json:"event"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type candidatePayload struct {
	Slot  string          `json:"slot"`
	Value json.RawMessage `json:"value"`
}

type entityPayload struct {
	Entity         string          `json:"entity"`
	Text           string          `json:"text"`
	Value          json.RawMessage `json:"value"`
	AdditionalInfo *additionalInfo `json:"additional_info"`
}

type additionalInfo struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
	Unit  string          `json:"unit"`
	Grain string          `json:"grain"`
	From  json.RawMessage `json:"from"`
	To    json.RawMessage `json:"to"`
}

type webhookResponse struct {
	Events    []map[string]any `json:"events"`
	Responses []map[string]any `json:"responses"`
}

func (r *webhookRequest) toEngineRequest() *engine.Request {
	req := &engine.Request{
		Action:     r.NextAction,
		SenderID:   r.SenderID,
		Intent:     r.Tracker.LatestMessage.Intent.Name,
		Entities:   decodeEntities(r.Tracker.LatestMessage.Entities),
		Slots:      decodeSlots(r.Tracker.Slots),
		ActiveForm: r.Tracker.ActiveLoop.Name,
		Metadata:   sessionMetadata(r.Tracker.Events),
	}
	for _, cand := range r.Candidates {
		req.Candidates = append(req.Candidates, engine.SlotCandidate{
			Name:  cand.Slot,
			Value: decodeSlotValue(cand.Slot, cand.Value),
		})
	}
	return req
}

// sessionMetadata pulls the channel metadata off the last session_started
// event, where the connector records the user id.
func sessionMetadata(events []trackerEvent) map[string]string {
	var metadata map[string]string
	for _, ev := range events {
		if ev.Event == "session_started" && ev.Metadata != nil {
			metadata = ev.Metadata
		}
	}
	return metadata
}

func decodeEntities(payloads []entityPayload) domain.Entities {
	entities := make(domain.Entities, 0, len(payloads))
	for _, p := range payloads {
		entities = append(entities, decodeEntity(p))
	}
	return entities
}

func decodeEntity(p entityPayload) domain.Entity {
	entity := domain.Entity{Type: p.Entity, Text: p.Text}

	info := p.AdditionalInfo
	if info == nil {
		// plain NER hit: surface text only
		if s, ok := rawString(p.Value); ok && entity.Text == "" {
			entity.Text = s
		}
		return entity
	}

	detail := &domain.EntityDetail{
		Unit:  info.Unit,
		Grain: domain.Grain(info.Grain),
	}
	if n, ok := rawNumber(info.Value); ok {
		detail.Number = &n
	} else if n, ok := rawNumber(p.Value); ok {
		detail.Number = &n
	}
	if info.Type == "interval" {
		detail.From, _ = rawTime(info.From)
		detail.To, _ = rawTime(info.To)
	} else if s, ok := rawString(info.Value); ok {
		detail.Time = s
	} else if s, ok := rawString(p.Value); ok {
		detail.Time = s
	}

	entity.Detail = detail
	return entity
}

// rawTime accepts either a bare ISO string or duckling's
// {"value": "...", "grain": "..."} endpoint object.
func rawTime(raw json.RawMessage) (string, bool) {
	if s, ok := rawString(raw); ok {
		return s, true
	}
	var endpoint struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &endpoint); err != nil || endpoint.Value == "" {
		return "", false
	}
	return endpoint.Value, true
}

func rawString(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

func rawNumber(raw json.RawMessage) (float64, bool) {
	var n float64
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0, false
	}
	return n, true
}

func decodeSlots(slots map[string]json.RawMessage) domain.Snapshot {
	snapshot := make(domain.Snapshot, len(slots))
	for name, raw := range slots {
		snapshot[name] = decodeSlotValue(name, raw)
	}
	return snapshot
}

// decodeSlotValue maps a slot's JSON onto the typed union. Structured slots
// decode by name; everything else falls back on shape.
func decodeSlotValue(name string, raw json.RawMessage) domain.SlotValue {
	if len(raw) == 0 || string(raw) == "null" {
		return domain.Absent
	}

	switch name {
	case domain.SlotCreditCardBalance:
		return decodeCards(raw)
	case domain.SlotTransactionHistory:
		return decodeHistory(raw)
	case domain.SlotUserProfile:
		return decodeProfile(raw)
	}

	if s, ok := rawString(raw); ok {
		return domain.String(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return domain.StringList(list)
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		if d, derr := decimal.NewFromString(num.String()); derr == nil {
			return domain.Decimal(d)
		}
	}
	return domain.Absent
}

func decodeCards(raw json.RawMessage) domain.SlotValue {
	var payload map[string]map[string]json.Number
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Absent
	}

	cards := make(domain.Cards, len(payload))
	for card, balances := range payload {
		b := make(domain.CardBalances, len(balances))
		for label, num := range balances {
			d, err := decimal.NewFromString(num.String())
			if err != nil {
				return domain.Absent
			}
			b[label] = d
		}
		cards[card] = b
	}
	return domain.CardsValue(cards)
}

func decodeHistory(raw json.RawMessage) domain.SlotValue {
	var payload map[string]map[string][]struct {
		Date   string      `json:"date"`
		Amount json.Number `json:"amount"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Absent
	}

	history := make(domain.TransactionHistory, len(payload))
	for category, vendors := range payload {
		history[category] = make(map[string][]domain.Transaction, len(vendors))
		for vendor, txs := range vendors {
			list := make([]domain.Transaction, 0, len(txs))
			for _, tx := range txs {
				date, err := parseISO(tx.Date)
				if err != nil {
					return domain.Absent
				}
				amount, err := decimal.NewFromString(tx.Amount.String())
				if err != nil {
					return domain.Absent
				}
				list = append(list, domain.Transaction{Date: date, Amount: amount})
			}
			history[category][vendor] = list
		}
	}
	return domain.HistoryValue(history)
}

func decodeProfile(raw json.RawMessage) domain.SlotValue {
	var payload struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Absent
	}
	return domain.ProfileValue(domain.UserProfile{ID: payload.ID, Name: payload.Name})
}

func encodeResponse(resp *engine.Response) webhookResponse {
	out := webhookResponse{
		Events:    make([]map[string]any, 0, len(resp.Events)),
		Responses: make([]map[string]any, 0, len(resp.Messages)),
	}

	for _, ev := range resp.Events {
		out.Events = append(out.Events, encodeEvent(ev))
	}
	for _, msg := range resp.Messages {
		out.Responses = append(out.Responses, encodeMessage(msg))
	}
	return out
}

func encodeEvent(ev engine.Event) map[string]any {
	switch ev.Kind {
	case engine.EventSlotSet:
		return map[string]any{"event": "slot", "name": ev.Slot, "value": encodeSlotValue(ev.Value)}
	case engine.EventSessionStarted:
		return map[string]any{"event": "session_started"}
	case engine.EventRestarted:
		return map[string]any{"event": "restart"}
	case engine.EventFollowupAction:
		return map[string]any{"event": "followup", "name": ev.Action}
	case engine.EventUserUtteranceReverted:
		return map[string]any{"event": "rewind"}
	case engine.EventActionExecuted:
		return map[string]any{"event": "action", "name": ev.Action}
	default:
		return map[string]any{"event": string(ev.Kind)}
	}
}

func encodeMessage(msg engine.Message) map[string]any {
	if msg.Template != "" {
		out := map[string]any{"template": msg.Template}
		for k, v := range msg.Params {
			out[k] = v
		}
		return out
	}

	out := map[string]any{"text": msg.Text}
	if len(msg.Buttons) > 0 {
		buttons := make([]map[string]string, 0, len(msg.Buttons))
		for _, b := range msg.Buttons {
			buttons = append(buttons, map[string]string{"payload": b.Payload, "title": b.Title})
		}
		out["buttons"] = buttons
	}
	return out
}

func encodeSlotValue(v domain.SlotValue) any {
	switch v.Kind() {
	case domain.KindAbsent:
		return nil
	case domain.KindString:
		s, _ := v.String()
		return s
	case domain.KindDecimal:
		d, _ := v.Decimal()
		return json.Number(d.String())
	case domain.KindStringList:
		list, _ := v.StringList()
		return list
	case domain.KindCards:
		cards, _ := v.Cards()
		out := make(map[string]map[string]json.Number, len(cards))
		for card, balances := range cards {
			b := make(map[string]json.Number, len(balances))
			for label, amount := range balances {
				b[label] = json.Number(amount.String())
			}
			out[card] = b
		}
		return out
	case domain.KindHistory:
		history, _ := v.History()
		out := make(map[string]map[string][]map[string]any, len(history))
		for category, vendors := range history {
			out[category] = make(map[string][]map[string]any, len(vendors))
			for vendor, txs := range vendors {
				list := make([]map[string]any, 0, len(txs))
				for _, tx := range txs {
					list = append(list, map[string]any{
						"date":   formatISO(tx.Date),
						"amount": json.Number(tx.Amount.String()),
					})
				}
				out[category][vendor] = list
			}
		}
		return out
	case domain.KindProfile:
		prof, _ := v.Profile()
		return map[string]string{"id": prof.ID, "name": prof.Name}
	case domain.KindTimePoint:
		point, _ := v.TimePoint()
		return formatISO(point.At)
	case domain.KindInterval:
		span, _ := v.Interval()
		return map[string]string{"from": formatISO(span.Start), "to": formatISO(span.End)}
	default:
		return nil
	}
}

func parseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func formatISO(t time.Time) string {
	return t.Format(time.RFC3339)
}
