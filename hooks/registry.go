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

// Package hooks holds named callbacks that observe a navigation toggle:
// synchronous checks before a transition, actions after one is applied, and
// handlers for aborted attempts.
package hooks

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/schlosser/go-nav/state"
)

// stateTable provides state lookup and enumeration.
// This interface is satisfied by *state.Table.
type stateTable interface {
	HasState(s state.State) bool
	GetAllStates() []state.State
}

// transitionKey uniquely identifies a transition from one state to another.
type transitionKey struct {
	from state.State
	to   state.State
}

// hookEntry stores a registered hook with its function and metadata.
type hookEntry struct {
	guard      GuardFunc
	action     ActionFunc
	onReject   RejectionFunc
	fromStates []string
	toStates   []string
	hookType   HookType
}

// Registry executes hooks synchronously in FIFO order.
// It handles panic recovery and error wrapping for all hook executions.
type Registry struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	transitions stateTable
	index       map[HookType]map[transitionKey][]*hookEntry
	hooks       map[string]*hookEntry
}

// NewRegistry creates a new synchronous hook registry.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		logger:      slog.Default(),
		transitions: state.Toggle,
		index: map[HookType]map[transitionKey][]*hookEntry{
			HookTypePre:       {},
			HookTypePost:      {},
			HookTypeRejection: {},
		},
		hooks: make(map[string]*hookEntry),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return r, nil
}

// entries returns a snapshot of the hooks of one type for a transition.
func (r *Registry) entries(hookType HookType, from, to state.State) []*hookEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.index[hookType][transitionKey{from, to}])
}

// ExecutePreTransitionHooks runs all pre-transition hooks for from -> to in FIFO order.
// The first failing hook stops execution; its error is returned wrapped in ErrCallbackFailed.
func (r *Registry) ExecutePreTransitionHooks(ctx context.Context, from, to state.State) error {
	for i, entry := range r.entries(HookTypePre, from, to) {
		if err := r.safeCallGuard(ctx, entry.guard, from, to); err != nil {
			return fmt.Errorf("%w during transition at index %d: %w",
				ErrCallbackFailed, i, err)
		}
	}
	return nil
}

// ExecutePostTransitionHooks runs all post-transition hooks for from -> to in FIFO order.
// Panics are recovered and logged but do not propagate.
func (r *Registry) ExecutePostTransitionHooks(ctx context.Context, from, to state.State) {
	for _, entry := range r.entries(HookTypePost, from, to) {
		r.safeCallAction(ctx, entry.action, from, to)
	}
}

// ExecuteRejectionHooks runs all rejection hooks for an aborted from -> to attempt.
// Panics are recovered and logged but do not propagate.
func (r *Registry) ExecuteRejectionHooks(ctx context.Context, from, to state.State, cause error) {
	for _, entry := range r.entries(HookTypeRejection, from, to) {
		r.safeCallRejection(ctx, entry.onReject, from, to, cause)
	}
}

// GetHooks returns information about all registered hooks.
func (r *Registry) GetHooks() []HookInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hooks := make([]HookInfo, 0, len(r.hooks))
	for name, entry := range r.hooks {
		hooks = append(hooks, HookInfo{
			Name:       name,
			FromStates: entry.fromStates,
			ToStates:   entry.toStates,
			Type:       entry.hookType,
		})
	}
	slices.SortFunc(hooks, func(a, b HookInfo) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return hooks
}

// RegisterPreTransitionHook registers a guard for transitions matching the patterns.
func (r *Registry) RegisterPreTransitionHook(config PreTransitionHookConfig) error {
	if config.Guard == nil {
		return fmt.Errorf("guard cannot be nil")
	}
	return r.register(config.Name, &hookEntry{
		guard:      config.Guard,
		fromStates: config.From,
		toStates:   config.To,
		hookType:   HookTypePre,
	})
}

// RegisterPostTransitionHook registers an action for transitions matching the patterns.
func (r *Registry) RegisterPostTransitionHook(config PostTransitionHookConfig) error {
	if config.Action == nil {
		return fmt.Errorf("action cannot be nil")
	}
	return r.register(config.Name, &hookEntry{
		action:     config.Action,
		fromStates: config.From,
		toStates:   config.To,
		hookType:   HookTypePost,
	})
}

// RegisterRejectionHook registers a handler for aborted attempts matching the patterns.
func (r *Registry) RegisterRejectionHook(config RejectionHookConfig) error {
	if config.OnReject == nil {
		return fmt.Errorf("rejection handler cannot be nil")
	}
	return r.register(config.Name, &hookEntry{
		onReject:   config.OnReject,
		fromStates: config.From,
		toStates:   config.To,
		hookType:   HookTypeRejection,
	})
}

// RemoveHook removes a hook by name from all registrations.
func (r *Registry) RemoveHook(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.hooks[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrHookNotFound, name)
	}

	byKey := r.index[entry.hookType]
	for key, entries := range byKey {
		byKey[key] = slices.DeleteFunc(entries, func(e *hookEntry) bool { return e == entry })
	}
	delete(r.hooks, name)

	return nil
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hookType := range r.index {
		r.index[hookType] = make(map[transitionKey][]*hookEntry)
	}
	r.hooks = make(map[string]*hookEntry)
}

// register validates an entry, resolves its patterns and indexes it.
func (r *Registry) register(name string, entry *hookEntry) error {
	if name == "" {
		return ErrHookNameEmpty
	}
	if len(entry.fromStates) == 0 || len(entry.toStates) == 0 {
		return ErrEmptyPattern
	}

	froms, err := r.expand(entry.fromStates)
	if err != nil {
		return err
	}
	tos, err := r.expand(entry.toStates)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hooks[name]; exists {
		return fmt.Errorf("%w: %s", ErrHookNameAlreadyExists, name)
	}
	r.hooks[name] = entry

	byKey := r.index[entry.hookType]
	for _, from := range froms {
		for _, to := range tos {
			key := transitionKey{from, to}
			byKey[key] = append(byKey[key], entry)
		}
	}
	return nil
}

// expand turns state names and "*" into concrete states, without duplicates.
func (r *Registry) expand(patterns []string) ([]state.State, error) {
	var out []state.State
	add := func(s state.State) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}

	for _, pattern := range patterns {
		if pattern == "*" {
			for _, s := range r.transitions.GetAllStates() {
				add(s)
			}
			continue
		}
		s, err := state.Parse(pattern)
		if err != nil || !r.transitions.HasState(s) {
			return nil, fmt.Errorf("%w '%s'", ErrUnknownState, pattern)
		}
		add(s)
	}
	return out, nil
}

// safeCallGuard executes a guard with panic recovery.
// If the guard panics, the panic is recovered and returned as an error.
func (r *Registry) safeCallGuard(ctx context.Context, guard GuardFunc, from, to state.State) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Guard panicked",
				"panic", rec, "from", from, "to", to)
			err = fmt.Errorf("%w: %v", ErrCallbackPanic, rec)
		}
	}()

	return guard(ctx, from, to)
}

// safeCallAction executes an action with panic recovery.
// Panics are logged but do not propagate.
func (r *Registry) safeCallAction(ctx context.Context, action ActionFunc, from, to state.State) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Action panicked",
				"panic", rec, "from", from, "to", to)
		}
	}()

	action(ctx, from, to)
}

// safeCallRejection executes a rejection handler with panic recovery.
func (r *Registry) safeCallRejection(ctx context.Context, fn RejectionFunc, from, to state.State, cause error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Rejection hook panicked",
				"panic", rec, "from", from, "to", to)
		}
	}()

	fn(ctx, from, to, cause)
}
