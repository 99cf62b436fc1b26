package nav

import "github.com/schlosser/go-nav/dom"

var _ dom.Listener = (*Controller)(nil)

// Enable registers the controller on the trigger for the configured event and
// returns a function that undoes it. Calling Enable again while enabled does
// not add a second listener.
func (c *Controller) Enable() func() {
	c.mu.Lock()
	if c.enabled {
		c.mu.Unlock()
		c.logger.Debug("Navigation toggle already enabled")
		return c.Disable
	}
	c.enabled = true
	c.mu.Unlock()

	c.doc.AddEventListener(c.trigger, c.settings.Event, c)
	c.logger.Debug("Navigation toggle enabled", "event", c.settings.Event)
	return c.Disable
}

// Disable removes the activation listener and then requests a close, so the
// panel is not left open without a way to close it. The close still goes
// through BeforeClose and may be rejected. Calling Disable on a controller
// that is not enabled does nothing.
func (c *Controller) Disable() {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = false
	c.mu.Unlock()

	c.doc.RemoveEventListener(c.trigger, c.settings.Event, c)
	c.logger.Debug("Navigation toggle disabled", "event", c.settings.Event)
	c.Close()
}

// HandleEvent is the activation handler. It suppresses the event's default
// action and toggles the panel.
func (c *Controller) HandleEvent(ev *dom.Event) {
	if ev != nil {
		ev.PreventDefault()
	}
	c.Toggle()
}
