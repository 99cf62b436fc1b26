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

// Package broadcast fans settled toggle states out to subscriber channels.
package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/schlosser/go-nav/state"
)

// Manager handles state change notifications to subscribers.
type Manager struct {
	mu          sync.Mutex
	subscribers map[chan state.State]*Config
	logger      *slog.Logger
}

// NewManager creates a new broadcast manager. A nil handler uses slog.Default().
func NewManager(handler slog.Handler) *Manager {
	logger := slog.Default()
	if handler != nil {
		logger = slog.New(handler)
	}
	return &Manager{
		subscribers: make(map[chan state.State]*Config),
		logger:      logger,
	}
}

// GetStateChan returns a channel that receives state change notifications.
// Channels created by the manager are closed when ctx is cancelled; channels
// supplied with WithCustomChannel are only unsubscribed.
func (m *Manager) GetStateChan(ctx context.Context, opts ...Option) (<-chan state.State, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	config := &Config{}
	for _, opt := range opts {
		opt(config)
	}
	if config.channel == nil {
		config.channel = make(chan state.State, 1)
	}
	ch := config.channel

	m.mu.Lock()
	m.subscribers[ch] = config
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.unsubscribe(ch)
		if !config.externalChannel {
			close(ch)
		}
	}()

	return ch, nil
}

// BroadcastHook returns a function with the hooks.ActionFunc signature, so the
// manager can be registered directly as a post-transition hook.
func (m *Manager) BroadcastHook() func(ctx context.Context, from, to state.State) {
	return func(ctx context.Context, from, to state.State) {
		m.Broadcast(to)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (m *Manager) SubscriberCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers)
}

// unsubscribe removes a channel from receiving broadcasts.
func (m *Manager) unsubscribe(ch chan state.State) {
	m.mu.Lock()
	delete(m.subscribers, ch)
	m.mu.Unlock()
}

// Broadcast sends s to all subscriber channels.
// Subscribers with negative timeout block indefinitely until delivered.
// Subscribers with timeout=0 behave asynchronously (drop messages if channel is full).
// Subscribers with positive timeout block until delivered or timeout.
// The mutex keeps broadcasts serial so every subscriber sees the same order.
func (m *Manager) Broadcast(s state.State) {
	logger := m.logger.WithGroup("broadcast").With("state", s.String())

	m.mu.Lock()
	defer m.mu.Unlock()

	var wg sync.WaitGroup

	for ch, config := range m.subscribers {
		switch {
		case config.timeout < 0:
			wg.Add(1)
			go func() {
				defer wg.Done()
				ch <- s
				logger.Debug("State delivered to blocking subscriber")
			}()
		case config.timeout == 0:
			select {
			case ch <- s:
				logger.Debug("State delivered to asynchronous subscriber")
			default:
				logger.Debug("Asynchronous subscriber channel full; state delivery skipped",
					"channel_capacity", cap(ch), "channel_length", len(ch))
			}
		default:
			wg.Add(1)
			go func(timeout time.Duration) {
				defer wg.Done()
				select {
				case ch <- s:
					logger.Debug("State delivered to synchronous subscriber")
				case <-time.After(timeout):
					logger.Warn("Synchronous subscriber blocked; state delivery timed out",
						"timeout", timeout,
						"channel_capacity", cap(ch), "channel_length", len(ch))
				}
			}(config.timeout)
		}
	}

	wg.Wait()
}
