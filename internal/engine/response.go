package engine

import "github.com/tellerbot/teller/internal/domain"

// EventKind tags a control or slot event returned to the dialogue engine.
type EventKind string

const (
	EventSlotSet              EventKind = "slot"
	EventSessionStarted       EventKind = "session_started"
	EventRestarted            EventKind = "restarted"
	EventFollowupAction       EventKind = "followup"
	EventUserUtteranceReverted EventKind = "rewind"
	EventActionExecuted       EventKind = "action"
)

// Event is one instruction for the dialogue engine. Events are applied by
// the engine in order after the action call returns.
type Event struct {
	Kind   EventKind
	Slot   string
	Value  domain.SlotValue
	Action string
}

// SlotSet sets or clears (value Absent) a slot.
func SlotSet(name string, value domain.SlotValue) Event {
	return Event{Kind: EventSlotSet, Slot: name, Value: value}
}

// ClearSlot is shorthand for setting a slot to Absent.
func ClearSlot(name string) Event {
	return Event{Kind: EventSlotSet, Slot: name, Value: domain.Absent}
}

// SessionStarted begins a fresh session.
func SessionStarted() Event { return Event{Kind: EventSessionStarted} }

// Restarted wipes the conversation.
func Restarted() Event { return Event{Kind: EventRestarted} }

// FollowupAction asks the engine to run the named action next.
func FollowupAction(name string) Event {
	return Event{Kind: EventFollowupAction, Action: name}
}

// UserUtteranceReverted drops the last user turn from the dialogue history.
func UserUtteranceReverted() Event { return Event{Kind: EventUserUtteranceReverted} }

// ActionExecuted records an action in the dialogue history without running it.
func ActionExecuted(name string) Event {
	return Event{Kind: EventActionExecuted, Action: name}
}

// Button is one quick-reply affordance on a message.
type Button struct {
	Payload string
	Title   string
}

// Message is one user-facing directive: either a template key with named
// parameters, or literal text with optional buttons.
type Message struct {
	Template string
	Params   map[string]string
	Text     string
	Buttons  []Button
}

// Response is everything one action call produced.
type Response struct {
	Events   []Event
	Messages []Message
}

// Dispatcher collects the user-facing messages of one action call, mirroring
// the collecting dispatcher the dialogue engine hands to custom actions.
type Dispatcher struct {
	messages []Message
}

// Utter queues a templated message.
func (d *Dispatcher) Utter(template string, params map[string]string) {
	d.messages = append(d.messages, Message{Template: template, Params: params})
}

// UtterText queues a literal message, optionally with buttons.
func (d *Dispatcher) UtterText(text string, buttons ...Button) {
	d.messages = append(d.messages, Message{Text: text, Buttons: buttons})
}

// Messages returns the queued messages in utterance order.
func (d *Dispatcher) Messages() []Message {
	return d.messages
}
