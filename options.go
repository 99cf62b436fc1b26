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
	"fmt"
	"log/slog"
	"strings"

	"github.com/schlosser/go-nav/state"
)

// Option is a functional option for configuring a Controller during construction.
type Option func(*Controller) error

// WithSettings replaces the whole settings record. Options applied after it
// override individual fields.
func WithSettings(s Settings) Option {
	return func(c *Controller) error {
		c.settings = s
		return nil
	}
}

// WithNavID sets the id of the navigation panel element.
func WithNavID(id string) Option {
	return func(c *Controller) error {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("nav id cannot be empty")
		}
		c.settings.NavID = id
		return nil
	}
}

// WithClassPrefix sets the prefix of the toggle and open class names.
func WithClassPrefix(prefix string) Option {
	return func(c *Controller) error {
		if strings.TrimSpace(prefix) == "" || strings.ContainsAny(prefix, " \t\n") {
			return fmt.Errorf("class prefix must be a single non-empty class token, got %q", prefix)
		}
		c.settings.ClassPrefix = prefix
		return nil
	}
}

// WithEvent sets the activation event name used by Enable and Disable.
func WithEvent(event string) Option {
	return func(c *Controller) error {
		if event == "" {
			return fmt.Errorf("event name cannot be empty")
		}
		c.settings.Event = event
		return nil
	}
}

// WithInitialState sets the starting state. Only Closed and Open are accepted.
func WithInitialState(s state.State) Option {
	return func(c *Controller) error {
		if s != state.Closed && s != state.Open {
			return fmt.Errorf("%w: initial state must be closed or open, got '%s'", state.ErrInvalidState, s)
		}
		c.settings.InitialState = s
		c.settings.DetectInitialState = false
		return nil
	}
}

// WithStateFromMarkup makes the controller start Open when the panel already
// carries the open class. The document must implement ClassReader.
func WithStateFromMarkup() Option {
	return func(c *Controller) error {
		c.settings.DetectInitialState = true
		return nil
	}
}

// WithBeforeOpen sets the guard consulted before opening.
func WithBeforeOpen(guard GuardFunc) Option {
	return func(c *Controller) error {
		c.settings.BeforeOpen = guard
		return nil
	}
}

// WithAfterOpen sets the callback run after the panel opened.
func WithAfterOpen(fn ActionFunc) Option {
	return func(c *Controller) error {
		c.settings.AfterOpen = fn
		return nil
	}
}

// WithOnOpenError sets the callback that receives the payload of a rejected open.
func WithOnOpenError(fn ErrorFunc) Option {
	return func(c *Controller) error {
		c.settings.OnOpenError = fn
		return nil
	}
}

// WithBeforeClose sets the guard consulted before closing.
func WithBeforeClose(guard GuardFunc) Option {
	return func(c *Controller) error {
		c.settings.BeforeClose = guard
		return nil
	}
}

// WithAfterClose sets the callback run after the panel closed.
func WithAfterClose(fn ActionFunc) Option {
	return func(c *Controller) error {
		c.settings.AfterClose = fn
		return nil
	}
}

// WithOnCloseError sets the callback that receives the payload of a rejected close.
func WithOnCloseError(fn ErrorFunc) Option {
	return func(c *Controller) error {
		c.settings.OnCloseError = fn
		return nil
	}
}

// WithHookRegistry sets a hook executor, usually a *hooks.Registry, run
// alongside the callbacks in Settings.
func WithHookRegistry(executor HookExecutor) Option {
	return func(c *Controller) error {
		if executor == nil {
			return fmt.Errorf("hook executor cannot be nil")
		}
		c.hooks = executor
		return nil
	}
}

// WithLogger sets the logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithLogHandler creates a new slog instance for the controller using your slog.Handler implementation.
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Controller) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logger = slog.New(handler)
		return nil
	}
}
