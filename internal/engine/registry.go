package engine

import (
	"context"

	"github.com/pkg/errors"
)

// ErrUnknownAction is returned when the engine asks for an action nobody
// registered.
var ErrUnknownAction = errors.New("unknown action")

// Action handles one named action call. Implementations must be stateless
// between calls: every input arrives in the request and every effect leaves
// through the returned events and the dispatcher.
type Action interface {
	Name() string
	Run(ctx context.Context, disp *Dispatcher, req *Request) ([]Event, error)
}

// Registry routes action names to their handlers.
type Registry struct {
	actions map[string]Action
}

// NewRegistry builds a registry from the given handlers.
func NewRegistry(actions ...Action) *Registry {
	m := make(map[string]Action, len(actions))
	for _, a := range actions {
		m[a.Name()] = a
	}
	return &Registry{actions: m}
}

// Register adds a handler, replacing any previous one with the same name.
func (r *Registry) Register(a Action) {
	r.actions[a.Name()] = a
}

// Dispatch runs the handler matching req.Action and assembles its response.
func (r *Registry) Dispatch(ctx context.Context, req *Request) (*Response, error) {
	action, ok := r.actions[req.Action]
	if !ok {
		return nil, errors.Wrap(ErrUnknownAction, req.Action)
	}

	disp := &Dispatcher{}
	events, err := action.Run(ctx, disp, req)
	if err != nil {
		return nil, errors.Wrapf(err, "action %s", req.Action)
	}

	return &Response{Events: events, Messages: disp.Messages()}, nil
}
