package nav

import (
	"encoding/json"
	"fmt"

	"github.com/schlosser/go-nav/hooks"
	"github.com/schlosser/go-nav/state"
)

// hookSerializer is an optional interface for hook executors that can list
// their hooks. Only such executors have hooks included in JSON output.
type hookSerializer interface {
	GetHooks() []hooks.HookInfo
}

// snapshot is used for JSON marshaling/unmarshaling.
type snapshot struct {
	State       state.State      `json:"state"`
	NavID       string           `json:"nav_id"`
	ClassPrefix string           `json:"class_prefix"`
	Event       string           `json:"event"`
	Enabled     bool             `json:"enabled"`
	Queued      *state.State     `json:"queued,omitempty"`
	Hooks       []hooks.HookInfo `json:"hooks,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface. It serializes the
// current state, the bound names and, when the hook executor can list them,
// the registered hooks. Callbacks are not serialized.
func (c *Controller) MarshalJSON() ([]byte, error) {
	c.mu.Lock()
	snap := snapshot{
		State:       c.state,
		NavID:       c.settings.NavID,
		ClassPrefix: c.settings.ClassPrefix,
		Event:       c.settings.Event,
		Enabled:     c.enabled,
	}
	if c.hasQueued {
		queued := c.queued
		snap.Queued = &queued
	}
	c.mu.Unlock()

	if hs, ok := c.hooks.(hookSerializer); ok {
		snap.Hooks = hs.GetHooks()
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal navigation toggle: %w", err)
	}
	return data, nil
}

// WithSnapshot restores the names and the state of a controller serialized
// with MarshalJSON. A pending state restores to the state it started from,
// since its guard cannot be resumed. Hooks are not restored and must be
// registered again. Options applied after it override individual fields.
//
// Example usage:
//
//	data, _ := json.Marshal(oldToggle)
//	toggle, err := nav.New(doc, nav.WithSnapshot(data), nav.WithLogger(logger))
func WithSnapshot(data []byte) Option {
	return func(c *Controller) error {
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("failed to unmarshal navigation toggle: %w", err)
		}
		if !snap.State.IsValid() {
			return fmt.Errorf("%w: %d", state.ErrInvalidState, snap.State)
		}

		if snap.NavID != "" {
			c.settings.NavID = snap.NavID
		}
		if snap.ClassPrefix != "" {
			c.settings.ClassPrefix = snap.ClassPrefix
		}
		if snap.Event != "" {
			c.settings.Event = snap.Event
		}
		c.settings.InitialState = snap.State.Settled()
		c.settings.DetectInitialState = false

		if len(snap.Hooks) > 0 {
			c.logger.Warn("hooks from JSON will be dropped and must be re-registered",
				"hook_count", len(snap.Hooks))
		}
		return nil
	}
}
