package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/banter/internal/theme"
)

// ThemePlaceholder stands in for the toggle until the theme is resolved.
const ThemePlaceholder = "  ·  "

// Header represents the top header bar
type Header struct {
	width   int
	mode    theme.Mode
	mounted bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{mode: theme.Light}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetTheme records the theme state the toggle should show.
func (h *Header) SetTheme(mode theme.Mode, mounted bool) {
	h.mode = mode
	h.mounted = mounted
}

// ToggleLabel is the text of the theme toggle, or the placeholder before mount.
func (h *Header) ToggleLabel() string {
	if !h.mounted {
		return ThemePlaceholder
	}
	if h.mode.IsDark() {
		return "🌙 dark"
	}
	return "☀ light"
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + Title
	rightText := h.ToggleLabel() + " "

	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	return h.renderGradient(titleText+strings.Repeat(" ", paddingLen)+rightText, len([]rune(titleText)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content over a background fading from Primary to
// Bg. The first boldRunes runes are bold.
func (h *Header) renderGradient(content string, boldRunes int) string {
	if len(content) == 0 {
		return ""
	}

	p := CurrentPalette()
	startR, startG, startB := parseHexColor(p.Primary)
	endR, endG, endB := parseHexColor(p.Bg)
	textColor := lipgloss.Color(p.Text)
	if !h.mounted {
		textColor = lipgloss.Color(p.TextMuted)
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < boldRunes)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
