package workflow

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// Machine is a table-driven state machine shared by every workflow entity.
// Each entity family declares one Machine (see definitions.go) instead of
// re-implementing transition checks per controller.
type Machine[S ~string] struct {
	name        string
	transitions map[S][]S
}

// NewMachine builds a machine from a transition table. Statuses absent from
// the table as keys are terminal.
func NewMachine[S ~string](name string, transitions map[S][]S) *Machine[S] {
	return &Machine[S]{
		name:        name,
		transitions: transitions,
	}
}

// Name returns the entity family the machine governs
func (m *Machine[S]) Name() string {
	return m.name
}

// Can reports whether the transition from -> to is defined.
// A self-transition is always allowed: re-applying the current status is an
// idempotent no-op, never an error.
func (m *Machine[S]) Can(from, to S) bool {
	if from == to {
		return true
	}
	for _, next := range m.transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status
func (m *Machine[S]) IsTerminal(s S) bool {
	return len(m.transitions[s]) == 0
}

// Step validates the transition from -> to and returns
// types.ErrInvalidTransition when the table does not permit it.
func (m *Machine[S]) Step(from, to S) error {
	if !m.Can(from, to) {
		return goerr.Wrap(types.ErrInvalidTransition, "transition not permitted",
			goerr.V("entity", m.name),
			goerr.V("from", string(from)),
			goerr.V("to", string(to)),
		)
	}
	return nil
}
