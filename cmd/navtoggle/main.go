// Command navtoggle runs a terminal page with a navigation sidebar that is
// opened and closed through a guarded navigation toggle.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schlosser/go-nav/config"
	"github.com/schlosser/go-nav/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: $HOME/.config/go-nav.toml)")
	classPrefix := flag.String("class-prefix", "", "Class prefix. Override value from configuration file if exists")
	logPath := flag.String("log", "", "write logs to this file (logs are discarded when empty)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v.\n", cfgPath, err)
		os.Exit(1)
	}

	if *classPrefix != "" {
		cfg.Nav.ClassPrefix = *classPrefix
		fmt.Fprintf(os.Stderr, "Override class prefix configuration with %s\n", *classPrefix)
	}

	logger, closeLog, err := newLogger(*logPath, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logPath, err)
		os.Exit(1)
	}

	m, err := ui.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = closeLog()
		os.Exit(1)
	}

	_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()
	m.Close()
	if err := closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// newLogger returns a text logger writing to path. The terminal belongs to the
// UI, so without a path the logs are discarded.
func newLogger(path string, debug bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = f.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).WithGroup("navtoggle"), closeFn, nil
}
