// Package forms implements per-slot validation for the assistant's
// multi-turn forms. A form validation action receives freshly extracted
// slot candidates, runs the matching validator for each, and returns the
// resulting slot events. Validators are pure: all state lives in the
// request snapshot.
package forms

import (
	"context"
	"sort"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

// IntentExplain asks the assistant to list valid options for the slot
// currently being requested instead of filling it.
const IntentExplain = "explain"

// SlotMap is one validator's outcome: the target slot set to its accepted
// typed value (or Absent on rejection) plus any derived companion slots.
type SlotMap map[string]domain.SlotValue

// events flattens the map into slot events, target slot first and companions
// in name order so output stays deterministic.
func (m SlotMap) events(target string) []engine.Event {
	events := make([]engine.Event, 0, len(m))
	if v, ok := m[target]; ok {
		events = append(events, engine.SlotSet(target, v))
	}

	rest := make([]string, 0, len(m))
	for name := range m {
		if name != target {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		events = append(events, engine.SlotSet(name, m[name]))
	}
	return events
}

// rejected is the canonical rejection outcome for a slot.
func rejected(slot string) SlotMap {
	return SlotMap{slot: domain.Absent}
}

type slotValidator func(candidate domain.SlotValue, disp *engine.Dispatcher, req *engine.Request) SlotMap

type slotExplainer func(disp *engine.Dispatcher, req *engine.Request)

// ValidationAction dispatches candidates to per-slot validators and explain
// intents to per-slot explainers for one form.
type ValidationAction struct {
	name       string
	validators map[string]slotValidator
	explainers map[string]slotExplainer
	post       func(disp *engine.Dispatcher, req *engine.Request, events []engine.Event) []engine.Event
}

// Name implements engine.Action.
func (a *ValidationAction) Name() string { return a.name }

// Run implements engine.Action. Candidates validate in extraction order
// against a working view of the snapshot that already carries the slots
// accepted earlier in the same call, so a validator can depend on a slot
// filled one candidate before it (a keyword amount on the card chosen in
// the same turn).
func (a *ValidationAction) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	if req.Intent == IntentExplain {
		return a.explain(disp, req), nil
	}

	working := *req
	working.Slots = make(domain.Snapshot, len(req.Slots)+len(req.Candidates))
	for name, value := range req.Slots {
		working.Slots[name] = value
	}

	var events []engine.Event
	for _, cand := range req.Candidates {
		var accepted []engine.Event
		if validator, ok := a.validators[cand.Name]; ok {
			accepted = validator(cand.Value, disp, &working).events(cand.Name)
		} else {
			// slots without a validator are accepted as extracted
			accepted = []engine.Event{engine.SlotSet(cand.Name, cand.Value)}
		}

		events = append(events, accepted...)
		for _, ev := range accepted {
			if ev.Kind != engine.EventSlotSet {
				continue
			}
			if ev.Value.IsAbsent() {
				delete(working.Slots, ev.Slot)
			} else {
				working.Slots[ev.Slot] = ev.Value
			}
		}
	}

	if a.post != nil {
		events = a.post(disp, &working, events)
	}
	return events, nil
}

func (a *ValidationAction) explain(disp *engine.Dispatcher, req *engine.Request) []engine.Event {
	requested, _ := req.Slots.String(domain.SlotRequestedSlot)
	if explainer, ok := a.explainers[requested]; ok {
		explainer(disp, req)
	}
	// keep requesting the same slot so the form resumes where it paused
	return []engine.Event{engine.SlotSet(domain.SlotRequestedSlot, req.Slot(domain.SlotRequestedSlot))}
}

// validateConfirm accepts only an explicit yes or no; anything else clears
// the slot so the form re-prompts.
func validateConfirm(candidate domain.SlotValue, _ *engine.Dispatcher, _ *engine.Request) SlotMap {
	value, _ := candidate.String()
	if value == "yes" || value == "no" {
		return SlotMap{domain.SlotConfirm: domain.String(value)}
	}
	return rejected(domain.SlotConfirm)
}

// slotSetInEvents reports whether the events already carry a non-absent
// value for the slot.
func slotSetInEvents(events []engine.Event, slot string) bool {
	for _, ev := range events {
		if ev.Kind == engine.EventSlotSet && ev.Slot == slot && !ev.Value.IsAbsent() {
			return true
		}
	}
	return false
}
