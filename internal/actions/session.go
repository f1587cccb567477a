package actions

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
)

// ActionListen is the engine's built-in listening action recorded at the end
// of session bootstrap.
const ActionListen = "action_listen"

// ProfileSource resolves a user id to their profile and seed slots. The
// implementation decides what an unknown or anonymous id maps to; lookups
// happen outside the call path, so the source must not block on I/O here.
type ProfileSource interface {
	Lookup(userID string) (domain.UserProfile, domain.Snapshot)
}

// SessionStart carries the previous session's slots into a fresh session and
// seeds the user profile. Identity comes from the channel metadata's userId;
// the anonymous profile substitutes when that is missing.
type SessionStart struct {
	profiles ProfileSource
	logger   *zap.Logger
}

// NewSessionStart builds the session bootstrap action.
func NewSessionStart(profiles ProfileSource, logger *zap.Logger) *SessionStart {
	return &SessionStart{profiles: profiles, logger: logger}
}

// Name implements engine.Action.
func (a *SessionStart) Name() string { return "action_session_start" }

// Run implements engine.Action. Event order is part of the contract: the
// session_started event first, then the carried-over slots, then a listen so
// the user speaks next.
func (a *SessionStart) Run(_ context.Context, _ *engine.Dispatcher, req *engine.Request) ([]engine.Event, error) {
	events := []engine.Event{engine.SessionStarted()}

	// all previously set slots are preserved verbatim
	names := make([]string, 0, len(req.Slots))
	for name := range req.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		events = append(events, engine.SlotSet(name, req.Slots[name]))
	}

	if req.Slot(domain.SlotUserProfile).IsAbsent() {
		events = append(events, a.seedProfile(req)...)
	} else if req.Slot(domain.SlotUserName).IsAbsent() {
		if prof, ok := req.Slot(domain.SlotUserProfile).Profile(); ok {
			events = append(events, engine.SlotSet(domain.SlotUserName, domain.String(prof.Name)))
		}
	}

	events = append(events, engine.ActionExecuted(ActionListen))
	return events, nil
}

func (a *SessionStart) seedProfile(req *engine.Request) []engine.Event {
	userID := req.Metadata["userId"]
	if userID == "" {
		userID = domain.AnonymousProfile.ID
	}

	prof, seed := a.profiles.Lookup(userID)
	a.logger.Debug("seeding session profile", zap.String("user_id", prof.ID))

	events := []engine.Event{
		engine.SlotSet(domain.SlotUserProfile, domain.ProfileValue(prof)),
	}
	if req.Slot(domain.SlotUserName).IsAbsent() {
		events = append(events, engine.SlotSet(domain.SlotUserName, domain.String(prof.Name)))
	}

	names := make([]string, 0, len(seed))
	for name := range seed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if req.Slot(name).IsAbsent() {
			events = append(events, engine.SlotSet(name, seed[name]))
		}
	}
	return events
}

// Restart wipes the conversation and boots a fresh session.
type Restart struct{}

// Name implements engine.Action.
func (Restart) Name() string { return "action_restart" }

// Run implements engine.Action.
func (Restart) Run(_ context.Context, _ *engine.Dispatcher, _ *engine.Request) ([]engine.Event, error) {
	return []engine.Event{
		engine.Restarted(),
		engine.FollowupAction("action_session_start"),
	}, nil
}
