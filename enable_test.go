package nav

import (
	"testing"

	"github.com/schlosser/go-nav/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableDisable(t *testing.T) {
	t.Parallel()

	t.Run("enable registers one listener", func(t *testing.T) {
		page := newTestPage(t, DefaultClassPrefix)
		c := newTestController(t, page)

		disable := c.Enable()
		c.Enable()
		assert.True(t, c.Enabled())
		assert.Equal(t, 1, page.Doc.ListenerCount(page.Toggle, DefaultEvent))

		disable()
		assert.False(t, c.Enabled())
		assert.Equal(t, 0, page.Doc.TotalListeners())
	})

	t.Run("custom event name is used for both directions", func(t *testing.T) {
		page := newTestPage(t, DefaultClassPrefix)
		c := newTestController(t, page, WithEvent("touchend"))

		c.Enable()
		assert.Equal(t, 1, page.Doc.ListenerCount(page.Toggle, "touchend"))
		assert.Equal(t, 0, page.Doc.ListenerCount(page.Toggle, DefaultEvent))

		c.Disable()
		assert.Equal(t, 0, page.Doc.TotalListeners())
	})

	t.Run("disable twice closes once", func(t *testing.T) {
		page := newTestPage(t, DefaultClassPrefix)
		closeAttempts := 0
		c := newTestController(t, page,
			WithInitialState(state.Open),
			WithBeforeClose(func(proceed func(), _ func(any)) {
				closeAttempts++
				proceed()
			}),
		)

		c.Enable()
		c.Disable()
		c.Disable()

		assert.Equal(t, 1, closeAttempts)
		assert.Equal(t, state.Closed, c.State())
		assert.Equal(t, 0, page.Doc.TotalListeners())
	})

	t.Run("disable without enable does nothing", func(t *testing.T) {
		page := newTestPage(t, DefaultClassPrefix)
		closeAttempts := 0
		c := newTestController(t, page,
			WithInitialState(state.Open),
			WithBeforeClose(func(proceed func(), _ func(any)) {
				closeAttempts++
				proceed()
			}),
		)

		c.Disable()
		assert.Equal(t, 0, closeAttempts)
		assert.Equal(t, state.Open, c.State())
	})

	t.Run("rejected close on disable keeps panel open", func(t *testing.T) {
		page := newTestPage(t, DefaultClassPrefix)
		var received any
		c := newTestController(t, page,
			WithInitialState(state.Open),
			WithBeforeClose(func(_ func(), abort func(any)) { abort("busy") }),
			WithOnCloseError(func(errData any) { received = errData }),
		)

		c.Enable()
		c.Disable()

		assert.Equal(t, "busy", received)
		assert.Equal(t, state.Open, c.State())
		assert.Equal(t, 0, page.Doc.TotalListeners())
	})

	t.Run("disable while opening closes after the guard", func(t *testing.T) {
		page := newTestPage(t, DefaultClassPrefix)
		g := &heldGuard{}
		c := newTestController(t, page, WithBeforeOpen(g.guard))

		c.Enable()
		c.Open()
		c.Disable()
		assert.Equal(t, state.Opening, c.State())

		g.proceed()
		assert.Equal(t, state.Closed, c.State())
	})

	t.Run("re-enable after disable", func(t *testing.T) {
		page := newTestPage(t, DefaultClassPrefix)
		c := newTestController(t, page)

		c.Enable()
		c.Disable()
		c.Enable()
		assert.Equal(t, 1, page.Doc.TotalListeners())

		_, err := page.Doc.Dispatch(page.Toggle, DefaultEvent)
		require.NoError(t, err)
		assert.Equal(t, state.Open, c.State())
	})
}

func TestHandleEvent(t *testing.T) {
	t.Parallel()

	t.Run("activation toggles and prevents default", func(t *testing.T) {
		page := newTestPage(t, "menu")
		c := newTestController(t, page, WithClassPrefix("menu"))
		body, _ := page.Doc.Body()
		c.Enable()

		ev, err := page.Doc.Dispatch(page.Toggle, DefaultEvent)
		require.NoError(t, err)
		assert.True(t, ev.DefaultPrevented())
		assert.Equal(t, state.Open, c.State())
		assert.True(t, page.Doc.HasClass(page.Nav, "menu-open"))
		assert.True(t, page.Doc.HasClass(body, "menu-open"))
		assert.Equal(t, "menu menu-open", page.Doc.ClassName(page.Nav))

		_, err = page.Doc.Dispatch(page.Toggle, DefaultEvent)
		require.NoError(t, err)
		assert.Equal(t, state.Closed, c.State())
		assert.False(t, page.Doc.HasClass(page.Nav, "menu-open"))
		assert.False(t, page.Doc.HasClass(body, "menu-open"))
	})

	t.Run("events on other elements are ignored", func(t *testing.T) {
		page := newTestPage(t, DefaultClassPrefix)
		c := newTestController(t, page)
		c.Enable()

		ev, err := page.Doc.Dispatch(page.Nav, DefaultEvent)
		require.NoError(t, err)
		assert.False(t, ev.DefaultPrevented())
		assert.Equal(t, state.Closed, c.State())
	})

	t.Run("nil event", func(t *testing.T) {
		c := newTestController(t, newTestPage(t, DefaultClassPrefix))
		assert.NotPanics(t, func() { c.HandleEvent(nil) })
		assert.Equal(t, state.Open, c.State())
	})
}
