package ui

import (
	"sync"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/banter/internal/theme"
)

// Palette is the full set of colors one theme mode renders with.
type Palette struct {
	Name string

	// Primary is the main accent color (header, focus, selection)
	Primary string
	// Secondary is used for key hints and the waiting indicator
	Secondary string

	Bg         string
	BgSelected string // Selected message background (defaults to Primary if empty)

	Text        string
	TextMuted   string
	TextInverse string // Text on colored backgrounds

	// Message labels
	User      string
	Assistant string

	Warning string
	Error   string
	Success string

	Border      string
	BorderFocus string // Focused borders (defaults to Primary if empty)

	MarkdownH1       string
	MarkdownH2       string
	MarkdownH3       string
	MarkdownCode     string
	MarkdownCodeBg   string
	MarkdownLink     string
	MarkdownListItem string

	// CodeStyle names the chroma style for fenced code blocks.
	CodeStyle string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (p Palette) GetBgSelected() string {
	if p.BgSelected != "" {
		return p.BgSelected
	}
	return p.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (p Palette) GetBorderFocus() string {
	if p.BorderFocus != "" {
		return p.BorderFocus
	}
	return p.Primary
}

var (
	LightPalette = Palette{
		Name:             "Light",
		Primary:          "#6366F1",
		Secondary:        "#0891B2",
		Bg:               "#FFFFFF",
		BgSelected:       "#E0E7FF",
		Text:             "#1F2937",
		TextMuted:        "#6B7280",
		TextInverse:      "#FFFFFF",
		User:             "#7C3AED",
		Assistant:        "#0891B2",
		Warning:          "#D97706",
		Error:            "#DC2626",
		Success:          "#16A34A",
		Border:           "#D1D5DB",
		BorderFocus:      "#6366F1",
		MarkdownH1:       "#6366F1",
		MarkdownH2:       "#7C3AED",
		MarkdownH3:       "#0891B2",
		MarkdownCode:     "#059669",
		MarkdownCodeBg:   "#F3F4F6",
		MarkdownLink:     "#0891B2",
		MarkdownListItem: "#6366F1",
		CodeStyle:        "github",
	}

	DarkPalette = Palette{
		Name:             "Dark",
		Primary:          "#7C3AED",
		Secondary:        "#06B6D4",
		Bg:               "#1F2937",
		BgSelected:       "#4C1D95",
		Text:             "#F9FAFB",
		TextMuted:        "#9CA3AF",
		TextInverse:      "#1F2937",
		User:             "#A78BFA",
		Assistant:        "#22D3EE",
		Warning:          "#F59E0B",
		Error:            "#EF4444",
		Success:          "#10B981",
		Border:           "#374151",
		MarkdownH1:       "#A78BFA",
		MarkdownH2:       "#C4B5FD",
		MarkdownH3:       "#22D3EE",
		MarkdownCode:     "#67E8F9",
		MarkdownCodeBg:   "#1E1E2E",
		MarkdownLink:     "#67E8F9",
		MarkdownListItem: "#06B6D4",
		CodeStyle:        "monokai",
	}
)

// PaletteFor returns the palette for a theme mode.
func PaletteFor(m theme.Mode) Palette {
	if m.IsDark() {
		return DarkPalette
	}
	return LightPalette
}

var (
	paletteMu      sync.RWMutex
	currentMode    = theme.Light
	currentPalette = LightPalette
)

// CurrentPalette returns the palette styles are currently built from.
func CurrentPalette() Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return currentPalette
}

// CurrentMode returns the mode last passed to ApplyMode.
func CurrentMode() theme.Mode {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return currentMode
}

// ApplyMode switches the palette and rebuilds every style. Its signature
// matches theme.PresenterFunc.
func ApplyMode(m theme.Mode) {
	paletteMu.Lock()
	currentMode = m
	currentPalette = PaletteFor(m)
	paletteMu.Unlock()
	regenerateStyles()
}

// Presenter returns a theme.Presenter that restyles the UI.
func Presenter() theme.Presenter {
	return theme.PresenterFunc(ApplyMode)
}

// regenerateStyles updates all style variables based on the current palette
func regenerateStyles() {
	p := CurrentPalette()

	ColorPrimary = lipgloss.Color(p.Primary)
	ColorSecondary = lipgloss.Color(p.Secondary)
	ColorBorder = lipgloss.Color(p.Border)
	ColorBorderFocus = lipgloss.Color(p.GetBorderFocus())
	ColorBg = lipgloss.Color(p.Bg)
	ColorText = lipgloss.Color(p.Text)
	ColorTextMuted = lipgloss.Color(p.TextMuted)
	ColorTextInverse = lipgloss.Color(p.TextInverse)
	ColorUser = lipgloss.Color(p.User)
	ColorAssistant = lipgloss.Color(p.Assistant)
	ColorWarning = lipgloss.Color(p.Warning)
	ColorError = lipgloss.Color(p.Error)
	ColorSuccess = lipgloss.Color(p.Success)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterCreditStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatFailureStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	ChatSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(p.GetBgSelected())).
		Foreground(ColorText)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	EditBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1)

	EditHintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	FlashStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	MarkdownH1Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.MarkdownH1)).
		MarginTop(1)

	MarkdownH2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.MarkdownH2)).
		MarginTop(1)

	MarkdownH3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.MarkdownH3))

	MarkdownH4Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextMuted)

	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.MarkdownCode)).
		Background(lipgloss.Color(p.MarkdownCodeBg))

	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.MarkdownListItem))

	MarkdownBlockquoteStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(ColorBorder).
		PaddingLeft(1)

	MarkdownHRStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.MarkdownLink)).
		Underline(true)
}
