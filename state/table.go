/*
Copyright 2024 Robert Terhaar <robbyt@robbyt.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package state

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Table is an index of allowed edges between states.
type Table struct {
	index map[State]map[State]struct{}
}

// NewTable builds a Table from a map of source states to their allowed targets.
// Every state mentioned, as a source or a target, must be a declared State.
// All validation errors are joined together.
func NewTable(edges map[State][]State) (*Table, error) {
	if len(edges) == 0 {
		return nil, ErrEmptyTable
	}

	index := make(map[State]map[State]struct{}, len(edges))
	var errs []error

	for from, tos := range edges {
		if !from.IsValid() {
			errs = append(errs, fmt.Errorf("%w: source %d", ErrInvalidState, int(from)))
			continue
		}
		index[from] = make(map[State]struct{}, len(tos))
		for _, to := range tos {
			if !to.IsValid() {
				errs = append(errs, fmt.Errorf("%w: destination %d", ErrInvalidState, int(to)))
				continue
			}
			index[from][to] = struct{}{}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Table{index: index}, nil
}

// MustNewTable is like NewTable but panics on error.
func MustNewTable(edges map[State][]State) *Table {
	t, err := NewTable(edges)
	if err != nil {
		panic(fmt.Sprintf("failed to create transition table: %v", err))
	}
	return t
}

// Toggle is the table a navigation toggle runs on. Every settled state moves
// through a pending state, and a pending state either reaches its target or
// falls back to where it started.
var Toggle = MustNewTable(map[State][]State{
	Closed:  {Opening},
	Opening: {Open, Closed},
	Open:    {Closing},
	Closing: {Closed, Open},
})

// IsTransitionAllowed reports whether the table has an edge from -> to.
func (t *Table) IsTransitionAllowed(from, to State) bool {
	targets, ok := t.index[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Validate returns an error wrapping ErrInvalidTransition when from -> to is
// not in the table.
func (t *Table) Validate(from, to State) error {
	if !t.IsTransitionAllowed(from, to) {
		return fmt.Errorf("%w: from '%s' to '%s'", ErrInvalidTransition, from, to)
	}
	return nil
}

// HasState reports whether s appears as a source state.
func (t *Table) HasState(s State) bool {
	_, ok := t.index[s]
	return ok
}

// GetAllStates returns every state known to the table, sorted.
func (t *Table) GetAllStates() []State {
	set := make(map[State]struct{})
	for from, tos := range t.index {
		set[from] = struct{}{}
		for to := range tos {
			set[to] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}
