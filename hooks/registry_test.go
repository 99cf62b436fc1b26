package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/schlosser/go-nav/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pre", HookTypePre.String())
	assert.Equal(t, "post", HookTypePost.String())
	assert.Equal(t, "rejection", HookTypeRejection.String())
	assert.Equal(t, "unknown", HookType(99).String())
}

func TestExecutePreTransitionHooks(t *testing.T) {
	t.Parallel()

	t.Run("Guard executes successfully", func(t *testing.T) {
		called := false
		reg, err := NewRegistry(WithLogger(slog.Default()))
		require.NoError(t, err)
		err = reg.RegisterPreTransitionHook(PreTransitionHookConfig{
			Name: "test-pre-hook-success",
			From: []string{"closed"},
			To:   []string{"open"},
			Guard: func(ctx context.Context, from, to state.State) error {
				called = true
				return nil
			},
		})
		require.NoError(t, err)

		err = reg.ExecutePreTransitionHooks(context.Background(), state.Closed, state.Open)
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("Guard failure returns wrapped error", func(t *testing.T) {
		sentinel := errors.New("menu is locked")
		reg, err := NewRegistry(WithLogger(slog.Default()))
		require.NoError(t, err)
		err = reg.RegisterPreTransitionHook(PreTransitionHookConfig{
			Name: "test-pre-hook-failure",
			From: []string{"closed"},
			To:   []string{"open"},
			Guard: func(ctx context.Context, from, to state.State) error {
				return sentinel
			},
		})
		require.NoError(t, err)

		err = reg.ExecutePreTransitionHooks(context.Background(), state.Closed, state.Open)
		require.ErrorIs(t, err, ErrCallbackFailed)
		require.ErrorIs(t, err, sentinel)
	})

	t.Run("Guard for another transition does not run", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)
		err = reg.RegisterPreTransitionHook(PreTransitionHookConfig{
			Name: "close-only",
			From: []string{"open"},
			To:   []string{"closed"},
			Guard: func(ctx context.Context, from, to state.State) error {
				return errors.New("should not run")
			},
		})
		require.NoError(t, err)

		assert.NoError(t, reg.ExecutePreTransitionHooks(context.Background(), state.Closed, state.Open))
	})
}

func TestExecutePostTransitionHooks(t *testing.T) {
	t.Parallel()

	t.Run("Multiple hooks execute in FIFO order", func(t *testing.T) {
		var order []int
		reg, err := NewRegistry(WithLogger(slog.Default()))
		require.NoError(t, err)
		for i := 1; i <= 2; i++ {
			err = reg.RegisterPostTransitionHook(PostTransitionHookConfig{
				Name: fmt.Sprintf("hook-%d", i),
				From: []string{"closed"},
				To:   []string{"open"},
				Action: func(ctx context.Context, from, to state.State) {
					order = append(order, i)
				},
			})
			require.NoError(t, err)
		}

		reg.ExecutePostTransitionHooks(context.Background(), state.Closed, state.Open)
		assert.Equal(t, []int{1, 2}, order)
	})
}

func TestExecuteRejectionHooks(t *testing.T) {
	t.Parallel()

	var got error
	reg, err := NewRegistry()
	require.NoError(t, err)
	err = reg.RegisterRejectionHook(RejectionHookConfig{
		Name: "record",
		From: []string{"*"},
		To:   []string{"open"},
		OnReject: func(ctx context.Context, from, to state.State, cause error) {
			got = cause
		},
	})
	require.NoError(t, err)

	cause := errors.New("nope")
	reg.ExecuteRejectionHooks(context.Background(), state.Closed, state.Open, cause)
	assert.Same(t, cause, got)
}

func TestPanicRecovery(t *testing.T) {
	t.Parallel()

	t.Run("Panic in guard is recovered and returned as error", func(t *testing.T) {
		reg, err := NewRegistry(WithLogger(slog.Default()))
		require.NoError(t, err)
		err = reg.RegisterPreTransitionHook(PreTransitionHookConfig{
			Name: "panicky",
			From: []string{"closed"},
			To:   []string{"open"},
			Guard: func(ctx context.Context, from, to state.State) error {
				panic("guard panic")
			},
		})
		require.NoError(t, err)

		err = reg.ExecutePreTransitionHooks(context.Background(), state.Closed, state.Open)
		require.ErrorIs(t, err, ErrCallbackFailed)
		require.ErrorIs(t, err, ErrCallbackPanic)
	})

	t.Run("Panic in action and rejection hooks is recovered and logged", func(t *testing.T) {
		reg, err := NewRegistry(WithLogger(slog.Default()))
		require.NoError(t, err)
		require.NoError(t, reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name:   "post",
			From:   []string{"closed"},
			To:     []string{"open"},
			Action: func(ctx context.Context, from, to state.State) { panic("post panic") },
		}))
		require.NoError(t, reg.RegisterRejectionHook(RejectionHookConfig{
			Name:     "reject",
			From:     []string{"closed"},
			To:       []string{"open"},
			OnReject: func(ctx context.Context, from, to state.State, err error) { panic("reject panic") },
		}))

		assert.NotPanics(t, func() {
			reg.ExecutePostTransitionHooks(context.Background(), state.Closed, state.Open)
			reg.ExecuteRejectionHooks(context.Background(), state.Closed, state.Open, errors.New("x"))
		})
	})
}

func TestRemoveAndClear(t *testing.T) {
	t.Parallel()

	noop := func(ctx context.Context, from, to state.State) {}

	t.Run("RemoveHook stops execution", func(t *testing.T) {
		calls := 0
		reg, err := NewRegistry()
		require.NoError(t, err)
		require.NoError(t, reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name:   "counter",
			From:   []string{"*"},
			To:     []string{"*"},
			Action: func(ctx context.Context, from, to state.State) { calls++ },
		}))

		reg.ExecutePostTransitionHooks(context.Background(), state.Open, state.Closed)
		require.NoError(t, reg.RemoveHook("counter"))
		reg.ExecutePostTransitionHooks(context.Background(), state.Open, state.Closed)
		assert.Equal(t, 1, calls)
		assert.Empty(t, reg.GetHooks())

		err = reg.RemoveHook("counter")
		require.ErrorIs(t, err, ErrHookNotFound)
	})

	t.Run("Clear removes all hooks", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)
		require.NoError(t, reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name: "a", From: []string{"closed"}, To: []string{"open"}, Action: noop,
		}))
		require.NoError(t, reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name: "b", From: []string{"open"}, To: []string{"closed"}, Action: noop,
		}))
		require.Len(t, reg.GetHooks(), 2)

		reg.Clear()

		reg.mu.RLock()
		assert.Empty(t, reg.hooks)
		assert.Empty(t, reg.index[HookTypePost])
		reg.mu.RUnlock()
	})

	t.Run("GetHooks is sorted by name", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)
		for _, name := range []string{"zeta", "alpha"} {
			require.NoError(t, reg.RegisterPostTransitionHook(PostTransitionHookConfig{
				Name: name, From: []string{"closed"}, To: []string{"open"}, Action: noop,
			}))
		}
		hooks := reg.GetHooks()
		require.Len(t, hooks, 2)
		assert.Equal(t, "alpha", hooks[0].Name)
		assert.Equal(t, HookTypePost, hooks[1].Type)
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	t.Run("WithLogger rejects nil logger", func(t *testing.T) {
		_, err := NewRegistry(WithLogger(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger cannot be nil")
	})

	t.Run("WithLogHandler rejects nil handler", func(t *testing.T) {
		_, err := NewRegistry(WithLogHandler(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log handler cannot be nil")
	})

	t.Run("WithLogHandler creates logger", func(t *testing.T) {
		reg, err := NewRegistry(WithLogHandler(slog.Default().Handler()))
		require.NoError(t, err)
		assert.NotNil(t, reg.logger)
	})

	t.Run("WithTransitions rejects nil table", func(t *testing.T) {
		_, err := NewRegistry(WithTransitions(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transitions cannot be nil")
	})
}

func TestPatternExpansion(t *testing.T) {
	t.Parallel()

	settledOnly := state.MustNewTable(map[state.State][]state.State{
		state.Closed: {state.Open},
		state.Open:   {state.Closed},
	})

	t.Run("Wildcard expands to every state of the table", func(t *testing.T) {
		called := make(map[state.State]bool)
		reg, err := NewRegistry(WithTransitions(settledOnly))
		require.NoError(t, err)

		err = reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name: "any-to-closed",
			From: []string{"*"},
			To:   []string{"closed"},
			Action: func(ctx context.Context, from, to state.State) {
				called[from] = true
			},
		})
		require.NoError(t, err)

		reg.ExecutePostTransitionHooks(context.Background(), state.Open, state.Closed)
		reg.ExecutePostTransitionHooks(context.Background(), state.Closed, state.Closed)
		assert.True(t, called[state.Open])
		assert.True(t, called[state.Closed])
	})

	t.Run("State unknown to the table returns error", func(t *testing.T) {
		reg, err := NewRegistry(WithTransitions(settledOnly))
		require.NoError(t, err)

		err = reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name:   "pending",
			From:   []string{"opening"},
			To:     []string{"open"},
			Action: func(ctx context.Context, from, to state.State) {},
		})
		require.ErrorIs(t, err, ErrUnknownState)
		assert.Contains(t, err.Error(), "unknown state 'opening'")
	})

	t.Run("Unparseable state returns error", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)

		err = reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name:   "bad",
			From:   []string{"ajar"},
			To:     []string{"open"},
			Action: func(ctx context.Context, from, to state.State) {},
		})
		require.ErrorIs(t, err, ErrUnknownState)
	})

	t.Run("Duplicate patterns register once per transition", func(t *testing.T) {
		calls := 0
		reg, err := NewRegistry()
		require.NoError(t, err)

		err = reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name:   "dup",
			From:   []string{"closed", "*"},
			To:     []string{"open", "open"},
			Action: func(ctx context.Context, from, to state.State) { calls++ },
		})
		require.NoError(t, err)

		reg.ExecutePostTransitionHooks(context.Background(), state.Closed, state.Open)
		assert.Equal(t, 1, calls)
	})
}

func TestRegisterHookValidation(t *testing.T) {
	t.Parallel()

	noop := func(ctx context.Context, from, to state.State) {}

	t.Run("Empty name", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)
		err = reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			From: []string{"closed"}, To: []string{"open"}, Action: noop,
		})
		require.ErrorIs(t, err, ErrHookNameEmpty)
	})

	t.Run("Empty from list", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)
		err = reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name: "empty-from", To: []string{"open"}, Action: noop,
		})
		require.ErrorIs(t, err, ErrEmptyPattern)
	})

	t.Run("Empty to list", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)
		err = reg.RegisterRejectionHook(RejectionHookConfig{
			Name: "empty-to", From: []string{"closed"},
			OnReject: func(ctx context.Context, from, to state.State, err error) {},
		})
		require.ErrorIs(t, err, ErrEmptyPattern)
	})

	t.Run("Duplicate name", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)
		cfg := PostTransitionHookConfig{Name: "twice", From: []string{"closed"}, To: []string{"open"}, Action: noop}
		require.NoError(t, reg.RegisterPostTransitionHook(cfg))
		err = reg.RegisterPostTransitionHook(cfg)
		require.ErrorIs(t, err, ErrHookNameAlreadyExists)
	})

	t.Run("Nil functions", func(t *testing.T) {
		reg, err := NewRegistry()
		require.NoError(t, err)
		assert.Error(t, reg.RegisterPreTransitionHook(PreTransitionHookConfig{
			Name: "nil-guard", From: []string{"closed"}, To: []string{"open"},
		}))
		assert.Error(t, reg.RegisterPostTransitionHook(PostTransitionHookConfig{
			Name: "nil-action", From: []string{"closed"}, To: []string{"open"},
		}))
		assert.Error(t, reg.RegisterRejectionHook(RejectionHookConfig{
			Name: "nil-reject", From: []string{"closed"}, To: []string{"open"},
		}))
	})
}
