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

// Package nav provides a navigation toggle: a controller that opens and closes
// a navigation panel when its trigger is activated. Every transition first
// asks a guard, which may answer immediately or later from any goroutine, and
// then runs an after-callback or an error-callback.
//
// Example usage:
//
//	page, _ := dom.NewNavPage("nav", "menu", "Home", "About")
//	toggle, err := nav.New(page.Doc,
//	    nav.WithClassPrefix("menu"),
//	    nav.WithBeforeClose(func(proceed func(), abort func(any)) {
//	        if unsavedChanges() {
//	            abort("unsaved changes")
//	            return
//	        }
//	        proceed()
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	disable := toggle.Enable()
//	defer disable()
package nav

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/schlosser/go-nav/dom"
	"github.com/schlosser/go-nav/state"
)

// Controller opens and closes one navigation panel. The current state is held
// explicitly and is only changed by the controller after a guard accepts.
type Controller struct {
	mu       sync.Mutex
	settings Settings
	table    *state.Table
	doc      Document
	hooks    HookExecutor
	logger   *slog.Logger

	panel     dom.Element
	trigger   dom.Element
	container dom.Element
	openClass string

	state     state.State
	attempt   *attempt
	queued    state.State
	hasQueued bool
	enabled   bool

	// idle is closed whenever no guard is outstanding and nothing is queued.
	idle chan struct{}
	busy bool
}

// New binds a controller to the panel, trigger and container elements of doc.
// Lookups happen once, here; if any element is missing the returned error
// wraps dom.ErrElementNotFound and no controller is created.
func New(doc Document, opts ...Option) (*Controller, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	c := &Controller{
		settings: DefaultSettings(),
		table:    state.Toggle,
		doc:      doc,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	c.settings = c.settings.withDefaults()

	if err := c.bind(); err != nil {
		return nil, err
	}

	c.openClass = c.settings.OpenClass()
	c.state = c.settings.InitialState
	if c.settings.DetectInitialState {
		c.state = c.detectState()
	}
	if c.state == state.Open {
		c.applyMarkers(state.Open)
	}

	c.idle = make(chan struct{})
	close(c.idle)

	c.logger = c.logger.With("nav_id", c.settings.NavID)
	c.logger.Debug("Navigation toggle bound", "state", c.state.String(), "event", c.settings.Event)
	return c, nil
}

// bind resolves the elements the controller works on.
func (c *Controller) bind() error {
	panel, err := c.doc.ElementByID(c.settings.NavID)
	if err != nil {
		return fmt.Errorf("failed to find navigation panel: %w", err)
	}
	trigger, err := c.doc.ElementByClass(panel, c.settings.ToggleClass())
	if err != nil {
		return fmt.Errorf("failed to find navigation trigger: %w", err)
	}
	container, err := c.doc.Body()
	if err != nil {
		return fmt.Errorf("failed to find container: %w", err)
	}

	c.panel = panel
	c.trigger = trigger
	c.container = container
	return nil
}

// detectState derives the starting state from the markup, when the document
// can report classes. This happens once, at construction.
func (c *Controller) detectState() state.State {
	reader, ok := c.doc.(ClassReader)
	if !ok {
		c.logger.Warn("Document cannot report classes; using configured initial state",
			"state", c.settings.InitialState.String())
		return c.settings.InitialState
	}
	if reader.HasClass(c.panel, c.openClass) {
		return state.Open
	}
	return state.Closed
}

// State returns the current state, including the pending states Opening and
// Closing while a guard is outstanding.
func (c *Controller) State() state.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsOpen reports whether the panel is visibly open. A pending close still
// reports true.
func (c *Controller) IsOpen() bool {
	return c.State().Settled() == state.Open
}

// Enabled reports whether the activation listener is registered.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Settings returns a copy of the settings the controller runs with.
func (c *Controller) Settings() Settings {
	return c.settings
}

// applyMarkers adds or removes the open class on the panel and container.
func (c *Controller) applyMarkers(s state.State) {
	switch s {
	case state.Open:
		c.doc.AddClass(c.panel, c.openClass)
		c.doc.AddClass(c.container, c.openClass)
	case state.Closed:
		c.doc.RemoveClass(c.panel, c.openClass)
		c.doc.RemoveClass(c.container, c.openClass)
	}
}
