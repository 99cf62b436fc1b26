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

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	nav "github.com/schlosser/go-nav"
	"github.com/schlosser/go-nav/dom"
	"github.com/schlosser/go-nav/hooks"
	"github.com/schlosser/go-nav/hooks/broadcast"
	"github.com/schlosser/go-nav/state"
)

// openDelay is how long the open guard takes to answer.
const openDelay = 50 * time.Millisecond

// errUnsavedChanges is what the close guard aborts with the first time it is asked.
var errUnsavedChanges = errors.New("unsaved changes")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := newLogger()

	page, err := dom.NewNavPage("nav", "nav", "Home", "About", "Contact")
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	manager := broadcast.NewManager(logger.Handler())
	toggle, err := newToggle(logger, page, manager)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	states, err := manager.GetStateChan(ctx, broadcast.WithBufferSize(4))
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	waitForClosedState(ctx, cancel, logger, states)

	disable := toggle.Enable()

	// Activate the trigger the way a click would.
	logger.Debug("Clicking the navigation trigger")
	if _, err := page.Doc.Dispatch(page.Toggle, nav.DefaultEvent); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	logger.Info("Waiting for the open guard", "state", toggle.State())
	if err := toggle.WaitIdle(ctx); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	logger.Info("Navigation classes", "nav", page.Doc.ClassName(page.Nav))

	// The first close is rejected, the second one goes through.
	disable()
	logger.Info("Still open after disable", "state", toggle.State())
	toggle.Close()

	<-ctx.Done()
	logger.Info("Done.", "listeners", page.Doc.TotalListeners())
}

func newLogger() *slog.Logger {
	// Create a new logger that omits the time attribute
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(handler).WithGroup("example")
}

// newToggle binds a controller whose open guard answers asynchronously and
// whose close guard refuses once.
func newToggle(logger *slog.Logger, page *dom.NavPage, manager *broadcast.Manager) (*nav.Controller, error) {
	registry, err := hooks.NewRegistry(hooks.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := registry.RegisterPostTransitionHook(hooks.PostTransitionHookConfig{
		Name:   "broadcast",
		From:   []string{"*"},
		To:     []string{"*"},
		Action: manager.BroadcastHook(),
	}); err != nil {
		return nil, err
	}

	var closeAttempts atomic.Int32
	return nav.New(page.Doc,
		nav.WithNavID(page.Nav.ID()),
		nav.WithLogger(logger),
		nav.WithHookRegistry(registry),
		nav.WithBeforeOpen(func(proceed func(), _ func(any)) {
			time.AfterFunc(openDelay, proceed)
		}),
		nav.WithBeforeClose(func(proceed func(), abort func(any)) {
			if closeAttempts.Add(1) == 1 {
				abort(errUnsavedChanges)
				return
			}
			proceed()
		}),
		nav.WithOnCloseError(func(errData any) {
			logger.Warn("Close rejected", "reason", errData)
		}),
	)
}

// waitForClosedState cancels ctx once a Closed state is received.
func waitForClosedState(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *slog.Logger,
	states <-chan state.State,
) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case s, ok := <-states:
				if !ok {
					return
				}
				logger.Info("State change received", "state", s)
				if s == state.Closed {
					logger.Info("Received closed state, canceling context...")
					cancel()
					return
				}
			case <-ctx.Done():
				logger.Debug("Context done, exiting listener")
				return
			}
		}
	}()
	return done
}
