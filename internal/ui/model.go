// Package ui is a terminal front end for a navigation toggle. A page with a
// sidebar is kept in an in-memory document; the toggle key dispatches the
// activation event on the sidebar's trigger and the view renders the sidebar
// whenever the panel carries the open marker.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	nav "github.com/schlosser/go-nav"
	"github.com/schlosser/go-nav/config"
	"github.com/schlosser/go-nav/dom"
	"github.com/schlosser/go-nav/hooks"
	"github.com/schlosser/go-nav/hooks/broadcast"
	"github.com/schlosser/go-nav/state"
)

// eventBuffer bounds the messages controller callbacks may queue for Update.
const eventBuffer = 16

// Items are the entries of the navigation sidebar.
var Items = []string{"Home", "Projects", "Blog", "About"}

// stateMsg carries a settled state from the broadcast manager.
type stateMsg state.State

// confirmCloseMsg asks the user whether a close may go ahead.
type confirmCloseMsg struct {
	proceed func()
	abort   func(any)
}

// rejectedMsg reports an aborted transition.
type rejectedMsg struct {
	target state.State
	reason string
}

// Model is the Bubble Tea model of the navtoggle UI.
type Model struct {
	cfg     *config.Config
	logger  *slog.Logger
	page    *dom.NavPage
	ctrl    *nav.Controller
	keys    *KeyMap
	cancel  context.CancelFunc
	states  <-chan state.State
	events  chan tea.Msg
	disable func()

	confirm *confirmCloseMsg
	status  string
	width   int
	height  int
}

// New builds the page, the controller and its hooks from cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.Default()
	}

	page, err := dom.NewNavPage(cfg.Nav.ID, cfg.Nav.ClassPrefix, Items...)
	if err != nil {
		return nil, fmt.Errorf("failed to build page: %w", err)
	}

	registry, err := hooks.NewRegistry(hooks.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create hook registry: %w", err)
	}

	m := &Model{
		cfg:    cfg,
		logger: logger,
		page:   page,
		keys:   NewKeyMap(cfg.UI.ToggleKey),
		events: make(chan tea.Msg, eventBuffer),
	}

	ctx, cancel := context.WithCancel(context.Background())
	manager := broadcast.NewManager(logger.Handler())
	states, err := manager.GetStateChan(ctx, broadcast.WithBufferSize(eventBuffer))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to subscribe to state changes: %w", err)
	}
	m.cancel = cancel
	m.states = states

	if err := registry.RegisterPostTransitionHook(hooks.PostTransitionHookConfig{
		Name:   "broadcast",
		From:   []string{"*"},
		To:     []string{"*"},
		Action: manager.BroadcastHook(),
	}); err != nil {
		cancel()
		return nil, err
	}
	if err := registry.RegisterRejectionHook(hooks.RejectionHookConfig{
		Name:     "status",
		From:     []string{"*"},
		To:       []string{"*"},
		OnReject: m.onReject,
	}); err != nil {
		cancel()
		return nil, err
	}

	opts := append(cfg.Options(),
		nav.WithHookRegistry(registry),
		nav.WithLogger(logger),
		nav.WithBeforeOpen(m.beforeOpen),
		nav.WithBeforeClose(m.beforeClose),
	)
	ctrl, err := nav.New(page.Doc, opts...)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create navigation toggle: %w", err)
	}
	m.ctrl = ctrl
	m.disable = ctrl.Enable()
	return m, nil
}

// Controller returns the navigation toggle driven by the model.
func (m *Model) Controller() *nav.Controller {
	return m.ctrl
}

// beforeOpen optionally delays the answer by the configured duration.
func (m *Model) beforeOpen(proceed func(), _ func(any)) {
	delay := m.cfg.UI.OpenDelay.Duration
	if delay <= 0 {
		proceed()
		return
	}
	time.AfterFunc(delay, proceed)
}

// beforeClose hands the decision to the user when confirmation is enabled.
// It may be called from any goroutine, so the request goes through m.events.
func (m *Model) beforeClose(proceed func(), abort func(any)) {
	if !m.cfg.UI.ConfirmClose {
		proceed()
		return
	}
	m.send(confirmCloseMsg{proceed: proceed, abort: abort})
}

func (m *Model) onReject(_ context.Context, _, to state.State, err error) {
	reason := err.Error()
	var rejection *nav.RejectionError
	if errors.As(err, &rejection) {
		reason = fmt.Sprint(rejection.Data)
	}
	m.send(rejectedMsg{target: to, reason: reason})
}

func (m *Model) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
		m.logger.Warn("UI event buffer full, dropping message", "message", fmt.Sprintf("%T", msg))
	}
}

func waitForState(ch <-chan state.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Init starts listening for controller events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForState(m.states), waitForEvent(m.events))
}

// Update handles key presses and controller events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		m.logger.Debug("Navigation state changed", "state", state.State(msg).String())
		m.status = ""
		return m, waitForState(m.states)

	case confirmCloseMsg:
		m.confirm = &msg
		return m, waitForEvent(m.events)

	case rejectedMsg:
		verb := "open"
		if msg.target == state.Closed {
			verb = "close"
		}
		m.status = fmt.Sprintf("%s rejected: %s", verb, msg.reason)
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			proceed := m.confirm.proceed
			m.confirm = nil
			proceed()
		case key.Matches(msg, m.keys.Deny):
			abort := m.confirm.abort
			m.confirm = nil
			abort("close cancelled")
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if _, err := m.page.Doc.Dispatch(m.page.Toggle, m.ctrl.Settings().Event); err != nil {
			m.logger.Error("Failed to dispatch activation", "error", err)
		}
	}
	return m, nil
}

// Close disables the toggle. Because disabling requests a close, a close
// guard that waits for confirmation is left unanswered.
func (m *Model) Close() {
	m.disable()
	m.cancel()
}

// View renders the page.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("go-nav"))
	b.WriteString("\n")

	content := contentStyle.Render("Press " + m.keys.Toggle.Help().Key + " to toggle the navigation.")
	if m.page.Doc.HasClass(m.page.Nav, m.ctrl.Settings().OpenClass()) {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), content)
	}
	b.WriteString(content)
	b.WriteString("\n")

	if m.confirm != nil {
		b.WriteString(promptStyle.Render("Close navigation? (y/n)"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderSidebar() string {
	lines := make([]string, 0, len(m.page.Items))
	for _, item := range m.page.Items {
		lines = append(lines, itemStyle.Render(item.Text()))
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatus() string {
	help := make([]string, 0, 2)
	for _, binding := range m.keys.ShortHelp() {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}
	return statusStyle.Render(fmt.Sprintf("state: %s  |  %s", m.ctrl.State(), strings.Join(help, "  ")))
}
