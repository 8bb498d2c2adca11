// Package chat is the chat session controller: it owns the message log, the
// draft input and the single-flight guard, and drives exactly one completion
// request per accepted submission.
package chat

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one entry in the log.
type Message struct {
	ID        string
	Text      string
	Sender    Sender
	IsEditing bool
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// Fixed texts for assistant messages the session writes itself.
const (
	GreetingID      = "initial-ai-message"
	DefaultGreeting = "How can I Help you today?"
	FallbackText    = "Sorry, I didn't get that."
	FailureText     = "Failed to fetch AI response. Please try again."
)
