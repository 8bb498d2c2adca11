package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors, rebuilt from the current palette by regenerateStyles.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorUser        color.Color
	ColorAssistant   color.Color
	ColorWarning     color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Header and footer
var (
	HeaderStyle       lipgloss.Style
	FooterStyle       lipgloss.Style
	FooterKeyStyle    lipgloss.Style
	FooterDescStyle   lipgloss.Style
	FooterCreditStyle lipgloss.Style
)

// Panels and chat
var (
	PanelStyle            lipgloss.Style
	PanelFocusedStyle     lipgloss.Style
	ChatUserStyle         lipgloss.Style
	ChatAssistantStyle    lipgloss.Style
	ChatMessageStyle      lipgloss.Style
	ChatFailureStyle      lipgloss.Style
	ChatSelectedStyle     lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
	EditBoxStyle          lipgloss.Style
	EditHintStyle         lipgloss.Style
)

// Status
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	FlashStyle         lipgloss.Style
)

// Markdown rendering
var (
	MarkdownH1Style         lipgloss.Style
	MarkdownH2Style         lipgloss.Style
	MarkdownH3Style         lipgloss.Style
	MarkdownH4Style         lipgloss.Style
	MarkdownBoldStyle       lipgloss.Style
	MarkdownItalicStyle     lipgloss.Style
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownListBulletStyle lipgloss.Style
	MarkdownBlockquoteStyle lipgloss.Style
	MarkdownHRStyle         lipgloss.Style
	MarkdownLinkStyle       lipgloss.Style
)

func init() {
	regenerateStyles()
}
