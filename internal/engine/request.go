package engine

import "github.com/tellerbot/teller/internal/domain"

// SlotCandidate is one freshly extracted slot value awaiting validation.
// Candidates keep extraction order so validation stays deterministic.
type SlotCandidate struct {
	Name  string
	Value domain.SlotValue
}

// Request is one action invocation from the dialogue engine. The snapshot is
// read-only; handlers communicate changes exclusively through returned
// events.
type Request struct {
	Action     string
	SenderID   string
	Intent     string
	Entities   domain.Entities
	Slots      domain.Snapshot
	Candidates []SlotCandidate
	ActiveForm string
	// Metadata carries channel metadata from the session_started event,
	// e.g. the "userId" key used by session bootstrap.
	Metadata map[string]string
}

// Slot is a shorthand for reading the snapshot.
func (r *Request) Slot(name string) domain.SlotValue {
	return r.Slots.Get(name)
}

// Entity returns the first extracted entity of the given dimension.
func (r *Request) Entity(dimension string) *domain.Entity {
	return r.Entities.First(dimension)
}
