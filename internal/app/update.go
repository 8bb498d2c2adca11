package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/banter/internal/keys"
	"github.com/zhubert/banter/internal/notification"
	"github.com/zhubert/banter/internal/ui"
)

// notifyReply is swapped out in tests.
var notifyReply = notification.ReplyReceived

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.log.Debug("key press", "key", key, "editing", m.session.EditingID() != "")

	// ctrl+c always quits; an outstanding request is abandoned
	if key == keys.CtrlC {
		m.session.Close()
		return m, tea.Quit
	}
	if key == keys.CtrlT {
		return m, m.toggleTheme()
	}

	if id := m.session.EditingID(); id != "" {
		return m.handleEditKey(id, msg)
	}

	switch key {
	case keys.Enter:
		return m, m.sendMessage()
	case keys.ShiftEnter, keys.AltEnter:
		m.chat.InsertNewline()
		m.session.SetInput(m.chat.Input())
		return m, nil
	case keys.CtrlUp:
		m.chat.SelectPrevious()
		return m, nil
	case keys.CtrlDown:
		m.chat.SelectNext()
		return m, nil
	case keys.Escape:
		m.chat.ClearSelection()
		return m, nil
	case keys.CtrlE:
		return m, m.beginEdit()
	case keys.CtrlY:
		return m, m.copyLastReply()
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	m.session.SetInput(m.chat.Input())
	return m, cmd
}

// handleEditKey routes keys while message id is in edit mode.
func (m *Model) handleEditKey(id string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Enter, keys.CtrlS:
		m.session.SetEditBuffer(m.chat.EditorValue())
		if err := m.session.SaveEdit(id); err != nil {
			m.log.Warn("save edit failed", "messageID", id, "error", err)
			return m, m.ShowFlashError("Could not save edit")
		}
		m.syncMessages()
		return m, nil
	case keys.Escape:
		if err := m.session.CancelEdit(id); err != nil {
			m.log.Warn("cancel edit failed", "messageID", id, "error", err)
		}
		m.syncMessages()
		return m, nil
	case keys.ShiftEnter, keys.AltEnter:
		m.chat.InsertNewline()
		m.session.SetEditBuffer(m.chat.EditorValue())
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	m.session.SetEditBuffer(m.chat.EditorValue())
	return m, cmd
}

// sendMessage submits the draft. Rejected submissions (blank text, a request
// already outstanding) leave the draft alone.
func (m *Model) sendMessage() tea.Cmd {
	ex, ok := m.session.Prepare(m.chat.Input())
	if !ok {
		return nil
	}
	m.chat.ClearInput()
	m.chat.ClearSelection()
	m.syncMessages()
	return tea.Batch(m.completeCmd(ex), ui.StopwatchTick())
}

// beginEdit puts the selected user message, or the newest one, in edit mode.
func (m *Model) beginEdit() tea.Cmd {
	id := m.chat.Selected()
	if id == "" {
		last, ok := m.session.LastUserMessage()
		if !ok {
			return nil
		}
		id = last.ID
	}

	text, err := m.session.BeginEdit(id)
	if err != nil {
		m.log.Warn("begin edit failed", "messageID", id, "error", err)
		return m.ShowFlashError("Only your own messages can be edited")
	}
	m.chat.StartEditor(text)
	m.syncMessages()
	return nil
}

func (m *Model) toggleTheme() tea.Cmd {
	mode := m.theme.Toggle()
	m.log.Debug("theme toggled", "theme", string(mode))
	m.syncTheme()
	m.chat.Refresh()
	return nil
}

func (m *Model) copyLastReply() tea.Cmd {
	if m.clip == nil {
		return nil
	}
	reply, ok := m.session.LastReply()
	if !ok {
		return nil
	}
	if err := m.clip.WriteText(reply.Text); err != nil {
		m.log.Warn("copy to clipboard failed", "error", err)
		return m.ShowFlashError("Copy failed")
	}
	return m.ShowFlash("Reply copied", ui.FlashSuccess)
}

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}
