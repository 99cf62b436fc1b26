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
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/schlosser/go-nav/state"
)

// attempt is one guard invocation. Its once latches the first of proceed and
// abort; every later signal from the same guard is ignored. The id ties the
// log lines of one attempt together.
type attempt struct {
	id     string
	from   state.State
	target state.State
	once   sync.Once
}

// Open asks BeforeOpen for permission and, if granted, opens the panel.
//
// Open never fails: a rejection is delivered to OnOpenError. Calling Open while
// the panel is open, or while an open is already pending, does nothing. Calling
// it while a close is pending queues it until the close guard has answered.
func (c *Controller) Open() {
	c.request(state.Open)
}

// Close asks BeforeClose for permission and, if granted, closes the panel.
// It mirrors Open.
func (c *Controller) Close() {
	c.request(state.Closed)
}

// Toggle opens a closed panel and closes an open one. The decision is made from
// the controller's own state. While a guard is outstanding, Toggle flips the
// latest requested direction: the first call queues the opposite transition,
// a second call cancels that queued request.
func (c *Controller) Toggle() {
	c.mu.Lock()
	intent := c.state.Target()
	if c.hasQueued {
		intent = c.queued
	}
	c.mu.Unlock()

	if intent == state.Open {
		c.request(state.Closed)
		return
	}
	c.request(state.Open)
}

// WaitIdle blocks until no guard is outstanding and no request is queued, or
// until ctx is done. There is no way to cancel a guard; WaitIdle only stops
// waiting for it.
func (c *Controller) WaitIdle(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// request starts, coalesces or queues a transition towards target.
func (c *Controller) request(target state.State) {
	c.mu.Lock()

	if c.state.IsPending() {
		pendingTarget := c.state.Target()
		switch {
		case target == pendingTarget && c.hasQueued:
			c.hasQueued = false
			c.logger.Debug("Request cancels queued transition",
				"pending", pendingTarget.String(), "cancelled", c.queued.String())
		case target == pendingTarget:
			c.logger.Debug("Request coalesced with pending transition", "target", target.String())
		default:
			c.queued = target
			c.hasQueued = true
			c.logger.Debug("Request queued behind pending transition",
				"pending", pendingTarget.String(), "queued", target.String())
		}
		c.mu.Unlock()
		return
	}

	if c.state == target {
		c.mu.Unlock()
		c.logger.Debug("Already in requested state", "state", target.String())
		return
	}

	pending, err := state.PendingFor(target)
	if err == nil {
		err = c.table.Validate(c.state, pending)
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("Refusing transition", "from", c.State().String(), "to", target.String(), "error", err)
		return
	}

	a := &attempt{
		id:     uuid.NewString(),
		from:   c.state,
		target: target,
	}
	c.state = pending
	c.attempt = a
	c.markBusy()
	c.mu.Unlock()

	c.logger.Debug("Transition requested", "from", a.from.String(), "to", target.String(), "attempt", a.id)
	c.runGuard(a)
}

// runGuard consults the registered pre-transition hooks and then the guard
// from Settings. The guard may answer before it returns or later.
func (c *Controller) runGuard(a *attempt) {
	if c.hooks != nil {
		if err := c.hooks.ExecutePreTransitionHooks(context.Background(), a.from, a.target); err != nil {
			c.resolve(a, false, err)
			return
		}
	}

	guard := c.settings.BeforeOpen
	if a.target == state.Closed {
		guard = c.settings.BeforeClose
	}

	proceed := func() { c.resolve(a, true, nil) }
	abort := func(errData any) { c.resolve(a, false, errData) }

	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error("Guard panicked",
				"panic", rec, "from", a.from.String(), "to", a.target.String())
			abort(fmt.Errorf("%w: %v", ErrCallbackPanic, rec))
		}
	}()
	guard(proceed, abort)
}

// resolve applies the first answer of a guard. Later answers are dropped.
func (c *Controller) resolve(a *attempt, accepted bool, errData any) {
	first := false
	a.once.Do(func() { first = true })
	if !first {
		c.logger.Debug("Ignoring repeated guard signal",
			"attempt", a.id, "to", a.target.String(), "accepted", accepted)
		return
	}

	next := a.from
	if accepted {
		next = a.target
	}

	c.mu.Lock()
	if c.attempt != a {
		c.mu.Unlock()
		c.logger.Error("Guard answered for an attempt that is no longer pending", "attempt", a.id)
		return
	}
	if err := c.table.Validate(c.state, next); err != nil {
		c.mu.Unlock()
		c.logger.Error("Refusing transition", "from", a.from.String(), "to", next.String(), "error", err)
		return
	}
	if accepted {
		c.applyMarkers(a.target)
	}
	c.state = next
	c.attempt = nil
	queued, hasQueued := c.queued, c.hasQueued
	c.hasQueued = false
	c.mu.Unlock()

	if accepted {
		c.logger.Info("Navigation toggled", "from", a.from.String(), "to", a.target.String())
		c.afterTransition(a)
	} else {
		c.rejected(a, errData)
	}

	if hasQueued {
		c.request(queued)
	}
	c.markIdleIfSettled()
}

// afterTransition runs the after-callback and the post-transition hooks.
func (c *Controller) afterTransition(a *attempt) {
	after := c.settings.AfterOpen
	if a.target == state.Closed {
		after = c.settings.AfterClose
	}
	c.safeCall("after", a, after)

	if c.hooks != nil {
		c.hooks.ExecutePostTransitionHooks(context.Background(), a.from, a.target)
	}
}

// rejected reports an aborted attempt to the error callback and rejection hooks.
func (c *Controller) rejected(a *attempt, errData any) {
	rejection := &RejectionError{From: a.from, Target: a.target, Data: errData}
	c.logger.Info("Navigation transition rejected", "from", a.from.String(), "to", a.target.String(), "error", rejection)

	onError := c.settings.OnOpenError
	if a.target == state.Closed {
		onError = c.settings.OnCloseError
	}
	c.safeCall("error", a, func() { onError(errData) })

	if c.hooks != nil {
		c.hooks.ExecuteRejectionHooks(context.Background(), a.from, a.target, rejection)
	}
}

// safeCall runs a callback with panic recovery. Panics are logged but do not propagate.
func (c *Controller) safeCall(kind string, a *attempt, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error("Callback panicked",
				"callback", kind, "panic", rec, "from", a.from.String(), "to", a.target.String())
		}
	}()
	fn()
}

// markBusy opens a new idle channel if the previous one was closed.
// Must be called while holding c.mu.
func (c *Controller) markBusy() {
	if !c.busy {
		c.busy = true
		c.idle = make(chan struct{})
	}
}

// markIdleIfSettled closes the idle channel once nothing is pending or queued.
func (c *Controller) markIdleIfSettled() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy && !c.state.IsPending() && !c.hasQueued {
		c.busy = false
		close(c.idle)
	}
}
