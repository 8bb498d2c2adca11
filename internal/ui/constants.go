package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// EditorHeight is the number of lines of the inline message editor
	EditorHeight = 3

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	MinTerminalWidth  = 40
	MinTerminalHeight = 12
)

// Labels shown in the chat panel.
const (
	UserLabel      = "You"
	AssistantLabel = "AI"
	SendingLabel   = "Sending..."
	Title          = "AI Chat"
	Credit         = "banter · built with Bubble Tea"
)
