package nav

import "github.com/schlosser/go-nav/state"

const (
	// DefaultNavID is the element id of the navigation panel.
	DefaultNavID = "nav"

	// DefaultClassPrefix is prepended to the toggle and open class names.
	DefaultClassPrefix = "nav"

	// DefaultEvent is the activation event the trigger listens for.
	DefaultEvent = "click"
)

// GuardFunc decides whether a transition may happen. It must eventually call
// proceed or abort, either before returning or later from any goroutine. Only
// the first call counts.
type GuardFunc func(proceed func(), abort func(errData any))

// ActionFunc runs after a transition was applied.
type ActionFunc func()

// ErrorFunc receives the payload a guard aborted with.
type ErrorFunc func(errData any)

// Settings configures a Controller. Zero values are replaced by defaults:
// guards proceed immediately and callbacks do nothing.
type Settings struct {
	// NavID is the id of the navigation panel element.
	NavID string

	// ClassPrefix is used to derive "<prefix>-toggle", the class of the trigger
	// inside the panel, and "<prefix>-open", the marker applied to the panel
	// and the container while open.
	ClassPrefix string

	// Event is the activation event name. The same name is used to register
	// and to unregister the listener.
	Event string

	// InitialState is Closed or Open.
	InitialState state.State

	// DetectInitialState reads the starting state from the panel's classes
	// instead of InitialState.
	DetectInitialState bool

	BeforeOpen  GuardFunc
	AfterOpen   ActionFunc
	OnOpenError ErrorFunc

	BeforeClose  GuardFunc
	AfterClose   ActionFunc
	OnCloseError ErrorFunc
}

// DefaultSettings returns the settings used when no options are given.
func DefaultSettings() Settings {
	return Settings{}.withDefaults()
}

// ToggleClass is the class that identifies the trigger element.
func (s Settings) ToggleClass() string {
	return s.ClassPrefix + "-toggle"
}

// OpenClass is the marker applied while the panel is open.
func (s Settings) OpenClass() string {
	return s.ClassPrefix + "-open"
}

func proceedImmediately(proceed func(), _ func(any)) { proceed() }

func (s Settings) withDefaults() Settings {
	if s.NavID == "" {
		s.NavID = DefaultNavID
	}
	if s.ClassPrefix == "" {
		s.ClassPrefix = DefaultClassPrefix
	}
	if s.Event == "" {
		s.Event = DefaultEvent
	}
	if s.InitialState != state.Open {
		s.InitialState = state.Closed
	}
	if s.BeforeOpen == nil {
		s.BeforeOpen = proceedImmediately
	}
	if s.BeforeClose == nil {
		s.BeforeClose = proceedImmediately
	}
	if s.AfterOpen == nil {
		s.AfterOpen = func() {}
	}
	if s.AfterClose == nil {
		s.AfterClose = func() {}
	}
	if s.OnOpenError == nil {
		s.OnOpenError = func(any) {}
	}
	if s.OnCloseError == nil {
		s.OnCloseError = func(any) {}
	}
	return s
}
