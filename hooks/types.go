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

package hooks

import (
	"context"

	"github.com/schlosser/go-nav/state"
)

// HookType represents when a hook runs relative to a transition attempt.
type HookType int

const (
	HookTypePre HookType = iota
	HookTypePost
	HookTypeRejection
)

// String returns the string representation of HookType.
func (h HookType) String() string {
	switch h {
	case HookTypePre:
		return "pre"
	case HookTypePost:
		return "post"
	case HookTypeRejection:
		return "rejection"
	default:
		return "unknown"
	}
}

// GuardFunc is a synchronous check run before a transition's own guard.
// Returning an error aborts the transition, and the error becomes the
// rejection payload.
type GuardFunc func(ctx context.Context, from, to state.State) error

// ActionFunc runs after a transition has been applied. It cannot abort.
type ActionFunc func(ctx context.Context, from, to state.State)

// RejectionFunc runs after a transition attempt was aborted. err wraps the
// payload the guard aborted with.
type RejectionFunc func(ctx context.Context, from, to state.State, err error)

// PreTransitionHookConfig contains configuration for registering a pre-transition hook.
// From and To hold state names ("open", "closed") or "*" for any state.
type PreTransitionHookConfig struct {
	Name  string
	From  []string
	To    []string
	Guard GuardFunc
}

// PostTransitionHookConfig contains configuration for registering a post-transition hook.
type PostTransitionHookConfig struct {
	Name   string
	From   []string
	To     []string
	Action ActionFunc
}

// RejectionHookConfig contains configuration for registering a rejection hook.
type RejectionHookConfig struct {
	Name     string
	From     []string
	To       []string
	OnReject RejectionFunc
}

// HookInfo represents information about a registered hook, returned by GetHooks.
type HookInfo struct {
	Name       string   `json:"name"`
	FromStates []string `json:"from"`
	ToStates   []string `json:"to"`
	Type       HookType `json:"type"`
}
