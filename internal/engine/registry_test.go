package engine

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerbot/teller/internal/domain"
)

type stubAction struct {
	name string
	run  func(disp *Dispatcher) ([]Event, error)
}

func (a stubAction) Name() string { return a.name }

func (a stubAction) Run(_ context.Context, disp *Dispatcher, _ *Request) ([]Event, error) {
	return a.run(disp)
}

func TestDispatch(t *testing.T) {
	registry := NewRegistry(stubAction{
		name: "action_greet",
		run: func(disp *Dispatcher) ([]Event, error) {
			disp.UtterText("hello")
			return []Event{SlotSet("greeted", domain.String("yes"))}, nil
		},
	})

	resp, err := registry.Dispatch(context.Background(), &Request{Action: "action_greet"})
	require.NoError(t, err)

	require.Len(t, resp.Events, 1)
	assert.Equal(t, "greeted", resp.Events[0].Slot)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "hello", resp.Messages[0].Text)
}

func TestDispatchUnknownAction(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Dispatch(context.Background(), &Request{Action: "action_missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestDispatchActionError(t *testing.T) {
	boom := errors.New("boom")
	registry := NewRegistry(stubAction{
		name: "action_fail",
		run:  func(*Dispatcher) ([]Event, error) { return nil, boom },
	})

	_, err := registry.Dispatch(context.Background(), &Request{Action: "action_fail"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestRegisterReplaces(t *testing.T) {
	registry := NewRegistry(stubAction{
		name: "action_greet",
		run:  func(disp *Dispatcher) ([]Event, error) { disp.UtterText("old"); return nil, nil },
	})
	registry.Register(stubAction{
		name: "action_greet",
		run:  func(disp *Dispatcher) ([]Event, error) { disp.UtterText("new"); return nil, nil },
	})

	resp, err := registry.Dispatch(context.Background(), &Request{Action: "action_greet"})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "new", resp.Messages[0].Text)
}
