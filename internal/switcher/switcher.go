// Package switcher implements the form-switch state machine: starting one
// transactional form while another is active asks for confirmation, and a
// finished form offers to resume the one it interrupted. The machine's
// state lives entirely in the next_form_name and previous_form_name slots,
// so every action stays stateless between calls.
package switcher

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/actions"
	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

// State of the switch machine, derived from the slot snapshot.
type State int

const (
	// Idle: no switch pending, no suspended form.
	Idle State = iota
	// PendingSwitchConfirmation: the user asked for another form and a
	// yes/no prompt is outstanding.
	PendingSwitchConfirmation
	// Suspended: a form was interrupted and waits to be resumed.
	Suspended
)

// Current derives the machine state from the snapshot. A pending switch
// shadows a suspension because only one prompt can be outstanding.
func Current(slots domain.Snapshot) State {
	if next, _ := slots.String(domain.SlotNextFormName); next != "" {
		return PendingSwitchConfirmation
	}
	if prev, _ := slots.String(domain.SlotPreviousFormName); prev != "" {
		return Suspended
	}
	return Idle
}

// Ask prompts whether to abandon the active form for the one the intent
// asks for, moving to PendingSwitchConfirmation. An unrecognized active or
// target form aborts the switch silently.
type Ask struct {
	logger *zap.Logger
}

// NewAsk builds the ask-to-switch action.
func NewAsk(logger *zap.Logger) *Ask {
	return &Ask{logger: logger}
}

// Name implements engine.Action.
func (*Ask) Name() string { return "action_switch_forms_ask" }

// Run implements engine.Action.
func (a *Ask) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	activeDesc, activeOK := domain.FormDescriptions[req.ActiveForm]
	nextForm := domain.FormForIntent[req.Intent]
	nextDesc, nextOK := domain.FormDescriptions[nextForm]

	if !activeOK || !nextOK {
		a.logger.Debug("cannot build switch prompt",
			zap.String("active_form", req.ActiveForm),
			zap.String("next_form", nextForm))
		return []engine.Event{engine.ClearSlot(domain.SlotNextFormName)}, nil
	}

	disp.UtterText(
		fmt.Sprintf("We haven't completed the %s yet. Are you sure you want to switch to %s?",
			activeDesc, nextDesc),
		actions.YesNoButtons()...,
	)
	return []engine.Event{engine.SlotSet(domain.SlotNextFormName, domain.String(nextForm))}, nil
}

// Affirm performs the switch: the active form is recorded as suspended and
// the pending target is cleared. Activating the target form itself is the
// dialogue engine's job.
type Affirm struct {
	logger *zap.Logger
}

// NewAffirm builds the affirm-switch action.
func NewAffirm(logger *zap.Logger) *Affirm {
	return &Affirm{logger: logger}
}

// Name implements engine.Action.
func (*Affirm) Name() string { return "action_switch_forms_affirm" }

// Run implements engine.Action.
func (a *Affirm) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	nextForm, _ := req.Slots.String(domain.SlotNextFormName)
	activeDesc, activeOK := domain.FormDescriptions[req.ActiveForm]
	nextDesc, nextOK := domain.FormDescriptions[nextForm]

	if !activeOK || !nextOK {
		a.logger.Debug("cannot build switch confirmation",
			zap.String("active_form", req.ActiveForm),
			zap.String("next_form", nextForm))
	} else {
		disp.UtterText(fmt.Sprintf(
			"Great. Let's switch from the %s to %s. Once completed, you will have the option to switch back.",
			activeDesc, nextDesc))
	}

	return []engine.Event{
		engine.SlotSet(domain.SlotPreviousFormName, domain.String(req.ActiveForm)),
		engine.ClearSlot(domain.SlotNextFormName),
	}, nil
}

// Deny keeps the active form and drops the pending target.
type Deny struct {
	logger *zap.Logger
}

// NewDeny builds the deny-switch action.
func NewDeny(logger *zap.Logger) *Deny {
	return &Deny{logger: logger}
}

// Name implements engine.Action.
func (*Deny) Name() string { return "action_switch_forms_deny" }

// Run implements engine.Action.
func (a *Deny) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	activeDesc, ok := domain.FormDescriptions[req.ActiveForm]
	if !ok {
		a.logger.Debug("cannot build switch denial", zap.String("active_form", req.ActiveForm))
	} else {
		disp.UtterText(fmt.Sprintf("Ok, let's continue with the %s.", activeDesc))
	}

	return []engine.Event{engine.ClearSlot(domain.SlotNextFormName)}, nil
}

// SwitchBackAsk offers to resume a suspended form once a flow concludes.
// The slot clears either way: resuming on yes is the engine's job, and a no
// simply drops the suspension.
type SwitchBackAsk struct {
	logger *zap.Logger
}

// NewSwitchBackAsk builds the ask-to-resume action.
func NewSwitchBackAsk(logger *zap.Logger) *SwitchBackAsk {
	return &SwitchBackAsk{logger: logger}
}

// Name implements engine.Action.
func (*SwitchBackAsk) Name() string { return "action_switch_back_ask" }

// Run implements engine.Action.
func (a *SwitchBackAsk) Run(_ context.Context, disp *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	previousForm, _ := req.Slots.String(domain.SlotPreviousFormName)
	desc, ok := domain.FormDescriptions[previousForm]
	if !ok {
		a.logger.Debug("cannot build switch-back prompt", zap.String("previous_form", previousForm))
	} else {
		disp.UtterText(
			fmt.Sprintf("Would you like to go back to the %s now?", desc),
			actions.YesNoButtons()...,
		)
	}

	return []engine.Event{engine.ClearSlot(domain.SlotPreviousFormName)}, nil
}
