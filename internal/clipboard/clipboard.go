// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/banter/internal/logger"
)

// Writer puts text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System is the OS clipboard. The zero value is ready to use; the
// underlying library is initialized on first write.
type System struct {
	once    sync.Once
	initErr error
}

func (s *System) init() error {
	s.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.ComponentLogger("clipboard").Warn("failed to initialize", "error", err)
			s.initErr = fmt.Errorf("clipboard unavailable: %w", err)
		}
	})
	return s.initErr
}

// WriteText replaces the clipboard contents with text.
func (s *System) WriteText(text string) error {
	if err := s.init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.ComponentLogger("clipboard").Debug("copied text", "chars", len(text))
	return nil
}

// ReadText returns the clipboard's text contents.
func (s *System) ReadText() (string, error) {
	if err := s.init(); err != nil {
		return "", err
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}

// Memory is an in-process clipboard for tests and headless terminals.
type Memory struct {
	mu   sync.Mutex
	text string
	Err  error
}

// WriteText stores text, or returns m.Err when set.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
