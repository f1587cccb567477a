package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
	"github.com/tellerbot/teller/internal/profile"
)

func TestSessionStartSeedsAnonymous(t *testing.T) {
	action := NewSessionStart(profile.NewMock(), zap.NewNop())

	events, _ := runAction(t, action, &engine.Request{Slots: domain.Snapshot{}})

	require.NotEmpty(t, events)
	assert.Equal(t, engine.EventSessionStarted, events[0].Kind)

	last := events[len(events)-1]
	assert.Equal(t, engine.EventActionExecuted, last.Kind)
	assert.Equal(t, ActionListen, last.Action)

	prof, ok := eventValue(t, events, domain.SlotUserProfile).Profile()
	require.True(t, ok)
	assert.Equal(t, domain.AnonymousProfile, prof)

	name, _ := eventValue(t, events, domain.SlotUserName).String()
	assert.Equal(t, "anonymous", name)

	balance, ok := eventValue(t, events, domain.SlotAccountBalance).Decimal()
	require.True(t, ok)
	assert.Equal(t, "1500.00", balance.StringFixed(2))

	recipients, ok := eventValue(t, events, domain.SlotKnownRecipients).StringList()
	require.True(t, ok)
	assert.Contains(t, recipients, "John Smith")
}

func TestSessionStartNamedUser(t *testing.T) {
	action := NewSessionStart(profile.NewMock(), zap.NewNop())

	events, _ := runAction(t, action, &engine.Request{
		Slots:    domain.Snapshot{},
		Metadata: map[string]string{"userId": "jane doe"},
	})

	prof, _ := eventValue(t, events, domain.SlotUserProfile).Profile()
	assert.Equal(t, "jane doe", prof.ID)
	assert.Equal(t, "Jane Doe", prof.Name)

	name, _ := eventValue(t, events, domain.SlotUserName).String()
	assert.Equal(t, "Jane Doe", name)
}

func TestSessionStartCarriesSlots(t *testing.T) {
	action := NewSessionStart(profile.NewMock(), zap.NewNop())
	slots := domain.Snapshot{
		domain.SlotUserProfile:    domain.ProfileValue(domain.UserProfile{ID: "u1", Name: "U One"}),
		domain.SlotUserName:       domain.String("U One"),
		domain.SlotAccountBalance: domain.String("450.00"),
	}

	events, _ := runAction(t, action, &engine.Request{Slots: slots})

	// the previous balance survives: the seed never overwrites a set slot
	balance, _ := eventValue(t, events, domain.SlotAccountBalance).String()
	assert.Equal(t, "450.00", balance)

	prof, _ := eventValue(t, events, domain.SlotUserProfile).Profile()
	assert.Equal(t, "u1", prof.ID)
}

func TestRestart(t *testing.T) {
	events, _ := runAction(t, Restart{}, &engine.Request{})

	require.Len(t, events, 2)
	assert.Equal(t, engine.EventRestarted, events[0].Kind)
	assert.Equal(t, engine.EventFollowupAction, events[1].Kind)
	assert.Equal(t, "action_session_start", events[1].Action)
}
