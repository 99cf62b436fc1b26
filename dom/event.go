package dom

// Event is delivered to listeners by Document.Dispatch.
type Event struct {
	Type   string
	Target Element

	defaultPrevented bool
}

// PreventDefault marks the event so the host skips its default handling.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener receives events. Listeners are compared by identity when removed,
// so implementations should be pointer types.
type Listener interface {
	HandleEvent(ev *Event)
}
