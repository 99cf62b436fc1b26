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

package nav

import (
	"errors"
	"fmt"

	"github.com/schlosser/go-nav/state"
)

// ErrNilDocument is returned by New when no document is supplied
var ErrNilDocument = errors.New("document cannot be nil")

// ErrGuardRejected is wrapped by RejectionError
var ErrGuardRejected = errors.New("guard rejected transition")

// ErrCallbackPanic is used as the rejection payload when a guard panics
var ErrCallbackPanic = errors.New("callback panicked")

// RejectionError describes an aborted transition attempt. It is what rejection
// hooks and logs see; the error callbacks in Settings receive Data unchanged.
type RejectionError struct {
	From   state.State
	Target state.State
	Data   any
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s from '%s' to '%s': %v", ErrGuardRejected, e.From, e.Target, e.Data)
}

// Unwrap exposes ErrGuardRejected and, when the payload is an error, the payload.
func (e *RejectionError) Unwrap() []error {
	errs := []error{ErrGuardRejected}
	if err, ok := e.Data.(error); ok {
		errs = append(errs, err)
	}
	return errs
}
