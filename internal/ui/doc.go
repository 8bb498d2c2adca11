// Package ui renders the banter chat screen with Bubble Tea components and
// Lipgloss styles.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: title and theme toggle (1 line)             │
//	├─────────────────────────────────────────────────────┤
//	│ Chat panel: message log (viewport)                  │
//	├─────────────────────────────────────────────────────┤
//	│ Input (textarea)                                    │
//	├─────────────────────────────────────────────────────┤
//	│ Footer: key bindings and credit (1 line)            │
//	└─────────────────────────────────────────────────────┘
//
// # Theming
//
// Two palettes exist, LightPalette and DarkPalette. ApplyMode swaps the
// active palette and rebuilds every exported style; it is the theme
// controller's Presenter, so the rendered screen always matches the
// persisted theme. Until the controller has mounted, the header shows a
// neutral placeholder in place of the toggle.
//
// # Editing
//
// A message in edit mode is drawn with an inline editor in place of its
// text. The Chat component only renders; the edit state itself lives on
// chat.Session.
package ui
