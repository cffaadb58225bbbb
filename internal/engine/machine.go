package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a state change is not an edge of
// the machine.
var ErrInvalidTransition = errors.New("engine: invalid transition")

// Machine is a finite state machine with an explicit edge table.
//
// Its generation counter identifies the current session: it increases on
// every Begin and every transition back into the initial state, so delayed
// callbacks can tell whether the session they were scheduled for is gone.
type Machine[S comparable] struct {
	initial S
	state   S
	edges   map[S][]S
	gen     uint64
}

// NewMachine creates a machine in its initial state.
func NewMachine[S comparable](initial S, edges map[S][]S) *Machine[S] {
	return &Machine[S]{initial: initial, state: initial, edges: edges}
}

// State returns the current state.
func (m *Machine[S]) State() S { return m.state }

// Is reports whether the current state is one of states.
func (m *Machine[S]) Is(states ...S) bool {
	for _, s := range states {
		if m.state == s {
			return true
		}
	}
	return false
}

// Generation returns the session counter.
func (m *Machine[S]) Generation() uint64 { return m.gen }

// Can reports whether to is reachable from the current state in one step.
func (m *Machine[S]) Can(to S) bool {
	for _, s := range m.edges[m.state] {
		if s == to {
			return true
		}
	}
	return false
}

// To moves along an edge.
func (m *Machine[S]) To(to S) error {
	if !m.Can(to) {
		return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, m.state, to)
	}
	m.state = to
	if to == m.initial {
		m.gen++
	}
	return nil
}

// Begin moves along an edge and starts a new session generation.
func (m *Machine[S]) Begin(to S) error {
	if err := m.To(to); err != nil {
		return err
	}
	if to != m.initial {
		m.gen++
	}
	return nil
}
