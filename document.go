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
	"context"

	"github.com/schlosser/go-nav/dom"
	"github.com/schlosser/go-nav/state"
)

// ElementLookup finds the elements a controller is bound to. Failed lookups
// return an error wrapping dom.ErrElementNotFound.
type ElementLookup interface {
	ElementByID(id string) (dom.Element, error)
	ElementByClass(parent dom.Element, class string) (dom.Element, error)
	Body() (dom.Element, error)
}

// ClassApplier adds and removes class markers. Both operations are idempotent.
type ClassApplier interface {
	AddClass(el dom.Element, class string)
	RemoveClass(el dom.Element, class string)
}

// EventTarget attaches and detaches event listeners.
type EventTarget interface {
	AddEventListener(el dom.Element, event string, l dom.Listener)
	RemoveEventListener(el dom.Element, event string, l dom.Listener)
}

// Document is everything a controller needs from its host. *dom.Document
// implements it.
type Document interface {
	ElementLookup
	ClassApplier
	EventTarget
}

// ClassReader is implemented by documents that can report whether an element
// carries a class. It is only used by WithStateFromMarkup.
type ClassReader interface {
	HasClass(el dom.Element, class string) bool
}

// HookExecutor runs registered hooks around transitions. *hooks.Registry
// implements it. Implementations handle panic recovery internally.
type HookExecutor interface {
	// ExecutePreTransitionHooks runs before the transition's own guard. An
	// error aborts the attempt and becomes the rejection payload.
	ExecutePreTransitionHooks(ctx context.Context, from, to state.State) error

	// ExecutePostTransitionHooks runs after a transition was applied.
	ExecutePostTransitionHooks(ctx context.Context, from, to state.State)

	// ExecuteRejectionHooks runs after an attempt was aborted.
	ExecuteRejectionHooks(ctx context.Context, from, to state.State, err error)
}

var _ Document = (*dom.Document)(nil)
var _ ClassReader = (*dom.Document)(nil)
