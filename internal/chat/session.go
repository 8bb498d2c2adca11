package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	berrors "github.com/zhubert/banter/internal/errors"
	"github.com/zhubert/banter/internal/logger"
)

// Completer turns one prompt into reply text. An empty string with a nil
// error means the provider answered without content.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt).
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Options configures a Session. The zero value is usable.
type Options struct {
	// Greeting, when non-empty, is inserted once as the first assistant message.
	Greeting string
	// Timeout bounds each completion request. Zero means no limit.
	Timeout time.Duration
	// Logger receives request diagnostics. Defaults to the "chat" component logger.
	Logger *slog.Logger
	// NewID generates message ids. Defaults to time-ordered UUIDv7 strings.
	NewID func() string
}

// Exchange is an accepted submission waiting for its reply.
type Exchange struct {
	UserID string
	Prompt string
}

// Reply is the outcome of one Exchange.
type Reply struct {
	Exchange Exchange
	Text     string // what the assistant message will say
	Err      error  // non-nil when Text is FailureText
}

// Session is one chat: an ordered message log plus input and edit state.
// All methods are safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	id         string
	completer  Completer
	messages   []Message
	input      string
	inFlight   bool
	editingID  string
	editBuffer string
	closed     bool

	timeout time.Duration
	log     *slog.Logger
	newID   func() string

	// ctx is cancelled by Close; every request derives from it.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a session that sends prompts to c.
func NewSession(c Completer, opts Options) *Session {
	if opts.NewID == nil {
		opts.NewID = newMessageID
	}
	id := uuid.NewString()
	if opts.Logger == nil {
		opts.Logger = logger.WithSession("chat", id)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:        id,
		completer: c,
		timeout:   opts.Timeout,
		log:       opts.Logger,
		newID:     opts.NewID,
		ctx:       ctx,
		cancel:    cancel,
	}
	if opts.Greeting != "" {
		s.messages = append(s.messages, Message{
			ID:     GreetingID,
			Text:   opts.Greeting,
			Sender: SenderAI,
		})
	}
	return s
}

// newMessageID returns a UUIDv7; its string form sorts in creation order.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ID returns the session identifier used in diagnostics.
func (s *Session) ID() string {
	return s.id
}

// Submit runs a whole request cycle: Prepare, Complete, Resolve. It blocks
// until the reply is appended and reports whether the submission was accepted.
// Empty input, an outstanding request or a closed session make it a no-op.
func (s *Session) Submit(ctx context.Context, text string) bool {
	ex, ok := s.Prepare(text)
	if !ok {
		return false
	}
	s.Resolve(s.Complete(ctx, ex))
	return true
}

// Prepare validates text and, if accepted, appends the user message, clears
// the input and sets the in-flight flag. The caller must pass the returned
// Exchange to Complete and the result to Resolve.
func (s *Session) Prepare(text string) (Exchange, bool) {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if trimmed == "" || s.inFlight || s.closed {
		return Exchange{}, false
	}

	msg := Message{
		ID:     s.newID(),
		Text:   trimmed,
		Sender: SenderUser,
	}
	s.messages = append(s.messages, msg)
	s.input = ""
	s.inFlight = true

	s.log.Debug("submission accepted", "messageID", msg.ID, "chars", len(trimmed))
	return Exchange{UserID: msg.ID, Prompt: trimmed}, true
}

// Complete issues the request for ex. It never fails: transport, protocol and
// decoding failures become FailureText and are logged once; a reply without
// content becomes FallbackText. The request is cancelled if ctx is done or the
// session is closed.
func (s *Session) Complete(ctx context.Context, ex Exchange) Reply {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()
	if s.timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, s.timeout)
		defer cancelTimeout()
	}

	start := time.Now()
	text, err := s.completer.Complete(ctx, ex.Prompt)
	elapsed := time.Since(start)

	if err != nil {
		kind := berrors.GetKind(err)
		if kind == berrors.KindCanceled {
			s.log.Info("completion canceled", "messageID", ex.UserID, "elapsed", elapsed)
		} else {
			s.log.Error("completion failed",
				"messageID", ex.UserID,
				"kind", kind.String(),
				"status", berrors.StatusCode(err),
				"elapsed", elapsed,
				"error", err)
		}
		return Reply{Exchange: ex, Text: FailureText, Err: err}
	}

	if text == "" {
		s.log.Debug("completion had no content, using fallback", "messageID", ex.UserID)
		text = FallbackText
	}
	s.log.Debug("completion received", "messageID", ex.UserID, "chars", len(text), "elapsed", elapsed)
	return Reply{Exchange: ex, Text: text}
}

// Resolve appends the assistant message for r and clears the in-flight flag.
// It returns false, appending nothing, once the session is closed.
func (s *Session) Resolve(r Reply) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	if s.closed {
		return false
	}
	s.messages = append(s.messages, Message{
		ID:     s.newID(),
		Text:   r.Text,
		Sender: SenderAI,
	})
	return true
}

// Close cancels any outstanding request. Replies that arrive afterwards are
// discarded and further submissions are rejected.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// Messages returns a copy of the log in order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Message returns the message with the given id.
func (s *Session) Message(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.messages[i], true
	}
	return Message{}, false
}

// LastUserMessage returns the most recent user message.
func (s *Session) LastUserMessage() (Message, bool) {
	return s.last(SenderUser)
}

// LastReply returns the most recent assistant message.
func (s *Session) LastReply() (Message, bool) {
	return s.last(SenderAI)
}

func (s *Session) last(sender Sender) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == sender {
			return s.messages[i], true
		}
	}
	return Message{}, false
}

// InFlight reports whether a request is outstanding.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Input returns the draft text.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput replaces the draft text.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// indexOf must be called with mu held.
func (s *Session) indexOf(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}
