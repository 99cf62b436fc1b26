package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	nav "github.com/schlosser/go-nav"
	"github.com/schlosser/go-nav/config"
	"github.com/schlosser/go-nav/dom"
	"github.com/schlosser/go-nav/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "go-nav.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "go-nav.toml"), config.DefaultPath())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := config.Load("/nonexistent/path/go-nav.toml")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
		assert.Equal(t, "nav", cfg.Nav.ID)
		assert.Equal(t, state.Closed, cfg.Nav.InitialState)
		assert.Equal(t, "n", cfg.UI.ToggleKey)
	})

	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
[nav]
id = "site-nav"
class_prefix = "menu"
event = "activate"
initial_state = "open"

[ui]
toggle_key = "m"
confirm_close = true
open_delay = "250ms"
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "site-nav", cfg.Nav.ID)
		assert.Equal(t, "menu", cfg.Nav.ClassPrefix)
		assert.Equal(t, "activate", cfg.Nav.Event)
		assert.Equal(t, state.Open, cfg.Nav.InitialState)
		assert.Equal(t, "m", cfg.UI.ToggleKey)
		assert.True(t, cfg.UI.ConfirmClose)
		assert.Equal(t, 250*time.Millisecond, cfg.UI.OpenDelay.Duration)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := config.Load(writeConfig(t, "[nav]\nclass_prefix = \"menu\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "menu", cfg.Nav.ClassPrefix)
		assert.Equal(t, "nav", cfg.Nav.ID)
		assert.Equal(t, "click", cfg.Nav.Event)
		assert.Equal(t, "n", cfg.UI.ToggleKey)
	})

	t.Run("errors", func(t *testing.T) {
		testCases := []struct {
			name    string
			content string
		}{
			{"invalid toml", "this is [ not valid toml\n"},
			{"unknown state", "[nav]\ninitial_state = \"half-open\"\n"},
			{"pending state", "[nav]\ninitial_state = \"opening\"\n"},
			{"bad duration", "[ui]\nopen_delay = \"soon\"\n"},
			{"negative duration", "[ui]\nopen_delay = \"-1s\"\n"},
			{"empty toggle key", "[ui]\ntoggle_key = \"\"\n"},
			{"unknown key", "[nav]\nprefix = \"menu\"\n"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				cfg, err := config.Load(writeConfig(t, tc.content))
				require.Error(t, err)
				assert.Nil(t, cfg)
			})
		}
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, `
[nav]
id = "site-nav"
class_prefix = "menu"
initial_state = "open"
`))
	require.NoError(t, err)

	page, err := dom.NewNavPage("site-nav", "menu")
	require.NoError(t, err)

	c, err := nav.New(page.Doc, cfg.Options()...)
	require.NoError(t, err)

	assert.Equal(t, state.Open, c.State())
	assert.Equal(t, "menu", c.Settings().ClassPrefix)
	assert.Equal(t, "click", c.Settings().Event)
	assert.True(t, page.Doc.HasClass(page.Nav, "menu-open"))
}
