package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width    int
	waiting  bool // a request is outstanding
	editing  bool // a message is in edit mode
	selected bool // a user message is selected

	flash     string
	flashType FlashType
}

// FlashType selects the color of a footer flash message.
type FlashType int

const (
	FlashSuccess FlashType = iota
	FlashError
)

// FlashDuration is how long a flash message stays up.
const FlashDuration = 3 * time.Second

// FlashTickMsg clears the flash message.
type FlashTickMsg time.Time

// FlashTick returns a command that dismisses the flash after FlashDuration.
func FlashTick() tea.Cmd {
	return tea.Tick(FlashDuration, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(waiting, editing, selected bool) {
	f.waiting = waiting
	f.editing = editing
	f.selected = selected
}

// SetFlash shows a short status message in place of the credit.
func (f *Footer) SetFlash(text string, kind FlashType) {
	f.flash = text
	f.flashType = kind
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flash = ""
}

// Flash returns the current flash message, or "".
func (f *Footer) Flash() string {
	return f.flash
}

// Bindings returns the shortcuts relevant to the current context.
func (f *Footer) Bindings() []KeyBinding {
	if f.editing {
		return []KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	}

	var bindings []KeyBinding
	if !f.waiting {
		bindings = append(bindings, KeyBinding{Key: "enter", Desc: "send"})
	}
	if f.selected {
		bindings = append(bindings, KeyBinding{Key: "ctrl+e", Desc: "edit"})
	}
	bindings = append(bindings,
		KeyBinding{Key: "ctrl+↑/↓", Desc: "select"},
		KeyBinding{Key: "ctrl+t", Desc: "theme"},
		KeyBinding{Key: "ctrl+y", Desc: "copy reply"},
		KeyBinding{Key: "pgup/dn", Desc: "scroll"},
		KeyBinding{Key: "ctrl+c", Desc: "quit"},
	)
	return bindings
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string
	if f.waiting && !f.editing {
		parts = append(parts, StatusLoadingStyle.Render(SendingLabel))
	}
	for _, b := range f.Bindings() {
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}
	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	right := FooterCreditStyle.Render(Credit)
	if f.flash != "" {
		style := FlashStyle
		if f.flashType == FlashError {
			style = StatusErrorStyle
		}
		right = style.Render(f.flash)
	}

	// Credit only when it fits; Padding(0, 1) takes two columns.
	gap := f.width - 2 - lipgloss.Width(content) - lipgloss.Width(right)
	if gap >= 2 {
		content += strings.Repeat(" ", gap) + right
	} else if f.flash != "" {
		content = right
	}

	return FooterStyle.Width(f.width).Render(fitWidth(content, f.width-2))
}

// fitWidth cuts styled text to width cells, keeping ANSI sequences intact.
func fitWidth(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
