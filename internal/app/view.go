package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.frame())
	return v
}

// frame is the screen content. Nothing styled is drawn until the theme is
// mounted, so the first painted frame already uses the resolved palette.
func (m *Model) frame() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if !m.theme.IsMounted() {
		return ""
	}
	return m.render()
}

// render draws header, chat and footer stacked.
func (m *Model) render() string {
	m.footer.SetContext(m.session.InFlight(), m.session.EditingID() != "", m.chat.Selected() != "")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.chat.View(),
		m.footer.View(),
	)
}
