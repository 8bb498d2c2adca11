package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/banter/internal/chat"
	"github.com/zhubert/banter/internal/keys"
)

// StopwatchTickMsg is sent to update the stopwatch display
type StopwatchTickMsg time.Time

// Chat is the conversation panel: message log, input and inline editor.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	editor   textarea.Model
	layout   *ViewContext
	width    int
	height   int
	focused  bool

	messages   []chat.Message
	selectedID string
	editingID  string

	waiting   bool
	waitStart time.Time

	content string // last rendered log
}

// NewChat creates a new chat panel
func NewChat(layout *ViewContext) *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	ed := textarea.New()
	ed.CharLimit = 0
	ed.SetHeight(EditorHeight)
	ed.ShowLineNumbers = false
	ed.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	if layout == nil {
		layout = NewViewContext()
	}
	c := &Chat{
		viewport: vp,
		input:    ti,
		editor:   ed,
		layout:   layout,
	}
	c.updateContent(true)
	return c
}

// SetSize sets the panel dimensions, input area included.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	logPanelHeight := height - InputTotalHeight
	viewportHeight := c.layout.InnerHeight(logPanelHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	innerWidth := c.layout.InnerWidth(width)

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(innerWidth - InputPaddingWidth)
	c.editor.SetWidth(innerWidth - InputPaddingWidth - BorderSize)
	c.updateContent(true)
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	c.syncFocus()
}

func (c *Chat) syncFocus() {
	switch {
	case !c.focused:
		c.input.Blur()
		c.editor.Blur()
	case c.editingID != "":
		c.input.Blur()
		c.editor.Focus()
	default:
		c.editor.Blur()
		c.input.Focus()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetMessages replaces the rendered log. The message in edit mode, if any,
// gets the inline editor.
func (c *Chat) SetMessages(msgs []chat.Message) {
	grew := len(msgs) != len(c.messages)
	c.messages = msgs

	editing := ""
	for _, m := range msgs {
		if m.IsEditing {
			editing = m.ID
			break
		}
	}
	if editing != c.editingID {
		c.editingID = editing
		c.syncFocus()
	}
	if c.selectedID != "" && !c.hasMessage(c.selectedID) {
		c.selectedID = ""
	}
	c.updateContent(grew)
}

func (c *Chat) hasMessage(id string) bool {
	for _, m := range c.messages {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Input returns the draft text
func (c *Chat) Input() string {
	return c.input.Value()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// InsertNewline adds a line break at the cursor of whichever field has focus.
func (c *Chat) InsertNewline() {
	if c.editingID != "" {
		c.editor.InsertRune('\n')
		return
	}
	c.input.InsertRune('\n')
}

// StartEditor seeds the inline editor. Call SetMessages afterwards so the
// editor is drawn in place of the message.
func (c *Chat) StartEditor(text string) {
	c.editor.SetValue(text)
}

// EditorValue returns the editor contents
func (c *Chat) EditorValue() string {
	return c.editor.Value()
}

// IsEditing reports whether a message is in edit mode
func (c *Chat) IsEditing() bool {
	return c.editingID != ""
}

// SelectPrevious moves the selection to the previous user message, starting
// from the newest. It returns the selected id.
func (c *Chat) SelectPrevious() string {
	return c.moveSelection(-1)
}

// SelectNext moves the selection to the next user message. Moving past the
// newest clears the selection.
func (c *Chat) SelectNext() string {
	return c.moveSelection(1)
}

func (c *Chat) moveSelection(dir int) string {
	var ids []string
	cur := -1
	for _, m := range c.messages {
		if !m.IsUser() {
			continue
		}
		if m.ID == c.selectedID {
			cur = len(ids)
		}
		ids = append(ids, m.ID)
	}

	switch {
	case len(ids) == 0:
		cur = -1
	case cur < 0 && dir < 0:
		cur = len(ids) - 1
	case cur < 0:
		// nothing selected and moving down: stay unselected
	default:
		cur = max(cur+dir, 0)
		if cur >= len(ids) {
			cur = -1
		}
	}

	c.selectedID = ""
	if cur >= 0 {
		c.selectedID = ids[cur]
	}
	c.updateContent(false)
	return c.selectedID
}

// Selected returns the selected user message id, or "".
func (c *Chat) Selected() string {
	return c.selectedID
}

// ClearSelection drops the selection
func (c *Chat) ClearSelection() {
	c.selectedID = ""
	c.updateContent(false)
}

// SetWaiting sets the waiting state shown while a request is outstanding
func (c *Chat) SetWaiting(waiting bool) {
	if waiting && !c.waiting {
		c.waitStart = time.Now()
	}
	c.waiting = waiting
	if waiting {
		c.input.Placeholder = SendingLabel
	} else {
		c.input.Placeholder = "Type your message..."
	}
	c.updateContent(true)
}

// IsWaiting returns whether we're waiting for a response
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Refresh re-renders the log, e.g. after the palette changed.
func (c *Chat) Refresh() {
	c.updateContent(false)
}

func (c *Chat) renderMessage(m chat.Message, wrapWidth int) string {
	var sb strings.Builder

	label := AssistantLabel + ":"
	labelStyle := ChatAssistantStyle
	if m.IsUser() {
		label = UserLabel + ":"
		labelStyle = ChatUserStyle
	}
	if m.ID == c.selectedID {
		sb.WriteString(ChatSelectedStyle.Render("▸ " + labelStyle.Render(label)))
	} else {
		sb.WriteString(labelStyle.Render(label))
	}
	sb.WriteString("\n")

	switch {
	case m.IsEditing:
		box := c.editor.View() + "\n" + EditHintStyle.Render("enter save · esc cancel")
		sb.WriteString(EditBoxStyle.Width(wrapWidth).Render(box))
	case !m.IsUser() && m.Text == chat.FailureText:
		sb.WriteString(ChatFailureStyle.Render(wrapText(m.Text, wrapWidth)))
	case m.IsUser():
		sb.WriteString(ChatMessageStyle.Render(wrapText(m.Text, wrapWidth)))
	default:
		sb.WriteString(renderMarkdown(strings.TrimSpace(m.Text), wrapWidth))
	}
	return sb.String()
}

func (c *Chat) updateContent(follow bool) {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	if len(c.messages) == 0 && !c.waiting {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Start a conversation..."))
	}
	for i, m := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.renderMessage(m, wrapWidth))
	}

	if c.waiting {
		if len(c.messages) > 0 {
			sb.WriteString("\n\n")
		}
		stopwatchStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
		sb.WriteString(ChatAssistantStyle.Render(AssistantLabel + ":"))
		sb.WriteString("\n")
		sb.WriteString(StatusLoadingStyle.Render(SendingLabel + " "))
		sb.WriteString(stopwatchStyle.Render(formatElapsed(time.Since(c.waitStart))))
	}

	c.content = sb.String()
	c.viewport.SetContent(c.content)
	if follow {
		c.viewport.GotoBottom()
	}
}

// Update handles messages. Enter and the edit keys are handled by the app
// before they reach here.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(StopwatchTickMsg); ok {
		if c.waiting {
			c.updateContent(false)
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	}

	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey && c.focused {
		switch keyMsg.String() {
		case keys.PgUp, keys.PgDown, keys.Home, keys.End:
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}

		var cmd tea.Cmd
		if c.editingID != "" {
			c.editor, cmd = c.editor.Update(msg)
			c.updateContent(false)
		} else {
			c.input, cmd = c.input.Update(msg)
		}
		return c, cmd
	}

	// Non-key events (mouse wheel, resize) go to the viewport
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	logPanel := panelStyle.Width(c.width).Height(c.height - InputTotalHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused && c.editingID == "" {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, logPanel, inputArea)
}
