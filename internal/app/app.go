// Package app is the Bubble Tea program: it owns the chat session and the
// theme controller and routes terminal events to them.
package app

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/banter/internal/chat"
	"github.com/zhubert/banter/internal/clipboard"
	"github.com/zhubert/banter/internal/logger"
	"github.com/zhubert/banter/internal/theme"
	"github.com/zhubert/banter/internal/ui"
)

// ThemeQueryTimeout is how long Init waits for the terminal to report its
// background before mounting the theme as light.
var ThemeQueryTimeout = 500 * time.Millisecond

// ReplyMsg carries a finished request back into the update loop.
type ReplyMsg struct {
	Reply chat.Reply
}

// themeQueryTimeoutMsg fires when the background color query went unanswered.
type themeQueryTimeoutMsg struct{}

// Options are the collaborators a Model needs.
type Options struct {
	Session   *chat.Session
	Theme     *theme.Controller
	Clipboard clipboard.Writer // nil disables ctrl+y
	Notify    bool             // desktop notification per reply
	Version   string
}

// Model is the main Bubble Tea model
type Model struct {
	session *chat.Session
	theme   *theme.Controller
	clip    clipboard.Writer
	notify  bool
	version string

	header *ui.Header
	footer *ui.Footer
	chat   *ui.Chat
	layout *ui.ViewContext

	width  int
	height int

	log *slog.Logger
}

// New creates a new app model
func New(opts Options) *Model {
	layout := ui.NewViewContext()
	m := &Model{
		session: opts.Session,
		theme:   opts.Theme,
		clip:    opts.Clipboard,
		notify:  opts.Notify,
		version: opts.Version,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		chat:    ui.NewChat(layout),
		layout:  layout,
		log:     logger.WithSession("app", opts.Session.ID()),
	}
	m.chat.SetFocused(true)
	m.chat.SetInput(m.session.Input())
	m.syncMessages()
	m.syncTheme()
	m.log.Info("app started", "version", m.version)
	return m
}

// Init asks the terminal for its background color; the answer mounts the theme.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.RequestBackgroundColor,
		tea.Tick(ThemeQueryTimeout, func(time.Time) tea.Msg {
			return themeQueryTimeoutMsg{}
		}),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.BackgroundColorMsg:
		m.mountTheme(msg.IsDark())
		return m, nil

	case themeQueryTimeoutMsg:
		if !m.theme.IsMounted() {
			m.log.Debug("background color query unanswered, assuming light")
			m.mountTheme(false)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case ReplyMsg:
		return m, m.handleReply(msg.Reply)

	case ui.FlashTickMsg:
		m.footer.ClearFlash()
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// mountTheme resolves the initial theme once; later background reports are ignored.
func (m *Model) mountTheme(systemDark bool) {
	if m.theme.IsMounted() {
		return
	}
	mode := m.theme.Mount(systemDark)
	m.log.Debug("theme mounted", "theme", string(mode), "systemDark", systemDark)
	m.syncTheme()
	m.chat.Refresh()
}

func (m *Model) syncTheme() {
	m.header.SetTheme(m.theme.Mode(), m.theme.IsMounted())
}

// syncMessages pushes the session log to the chat panel.
func (m *Model) syncMessages() {
	m.chat.SetMessages(m.session.Messages())
	m.chat.SetWaiting(m.session.InFlight())
}

// completeCmd runs the request for ex off the update loop.
func (m *Model) completeCmd(ex chat.Exchange) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return ReplyMsg{Reply: session.Complete(context.Background(), ex)}
	}
}

func (m *Model) handleReply(r chat.Reply) tea.Cmd {
	appended := m.session.Resolve(r)
	m.syncMessages()
	if !appended || !m.notify || r.Err != nil {
		return nil
	}
	text := r.Text
	return func() tea.Msg {
		// Delivery failures are logged by the notification package
		_ = notifyReply(text)
		return nil
	}
}

func (m *Model) updateSizes() {
	m.layout.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(m.layout.TerminalWidth)
	m.footer.SetWidth(m.layout.TerminalWidth)
	m.chat.SetSize(m.layout.ChatWidth, m.layout.ContentHeight)
}
