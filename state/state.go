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

// Package state defines the states of a navigation toggle and the table of
// edges the controller is allowed to take between them.
package state

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance for which Parse suggests a
// state name.
const maxSuggestDistance = 2

// State is the position of a navigation panel. Closed and Open are settled
// states; Opening and Closing are held while a guard has not yet answered.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

// All returns every state, in declaration order.
func All() []State {
	return []State{Closed, Opening, Open, Closing}
}

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the declared states.
func (s State) IsValid() bool {
	return s >= Closed && s <= Closing
}

// IsPending reports whether a guard is outstanding in this state.
func (s State) IsPending() bool {
	return s == Opening || s == Closing
}

// Settled returns the state the panel is visibly in. A pending state reports
// the state it started from, since nothing is applied until the guard accepts.
func (s State) Settled() State {
	switch s {
	case Opening:
		return Closed
	case Closing:
		return Open
	default:
		return s
	}
}

// Target returns the settled state a pending state is heading for.
// Settled states return themselves.
func (s State) Target() State {
	switch s {
	case Opening:
		return Open
	case Closing:
		return Closed
	default:
		return s
	}
}

// PendingFor returns the transient state used while moving towards target.
func PendingFor(target State) (State, error) {
	switch target {
	case Open:
		return Opening, nil
	case Closed:
		return Closing, nil
	default:
		return target, fmt.Errorf("%w: %s is not a settled state", ErrInvalidState, target)
	}
}

// Parse converts a name such as "open" into a State. Matching ignores case and
// surrounding whitespace.
func Parse(name string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "closed":
		return Closed, nil
	case "opening":
		return Opening, nil
	case "open":
		return Open, nil
	case "closing":
		return Closing, nil
	default:
		if hint := suggest(name); hint != "" {
			return Closed, fmt.Errorf("%w: %q (did you mean %q?)", ErrInvalidState, name, hint)
		}
		return Closed, fmt.Errorf("%w: %q", ErrInvalidState, name)
	}
}

// suggest returns the state name closest to name, or "" if none is close.
func suggest(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, s := range All() {
		if d := levenshtein.ComputeDistance(name, s.String()); d < bestDist {
			best, bestDist = s.String(), d
		}
	}
	return best
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so states can be read
// from TOML and JSON documents by name.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
