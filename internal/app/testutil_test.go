package app

import (
	"context"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/banter/internal/chat"
	"github.com/zhubert/banter/internal/clipboard"
	"github.com/zhubert/banter/internal/keys"
	"github.com/zhubert/banter/internal/logger"
	"github.com/zhubert/banter/internal/store"
	"github.com/zhubert/banter/internal/theme"
	"github.com/zhubert/banter/internal/ui"
)

// testEnv bundles a model with the fakes behind it.
type testEnv struct {
	m     *Model
	prefs *store.Memory
	clip  *clipboard.Memory
}

// replyWith returns a completer that always answers text.
func replyWith(text string) chat.Completer {
	return chat.CompleterFunc(func(context.Context, string) (string, error) {
		return text, nil
	})
}

// failWith returns a completer that always fails with err.
func failWith(err error) chat.Completer {
	return chat.CompleterFunc(func(context.Context, string) (string, error) {
		return "", err
	})
}

// newTestEnv creates a sized model with in-memory storage and clipboard.
func newTestEnv(t *testing.T, c chat.Completer, prefs map[string]string) *testEnv {
	t.Helper()
	t.Cleanup(func() { ui.ApplyMode(theme.Light) })

	n := 0
	session := chat.NewSession(c, chat.Options{
		Greeting: chat.DefaultGreeting,
		Logger:   logger.Discard(),
		NewID: func() string {
			n++
			return fmt.Sprintf("m%d", n)
		},
	})
	t.Cleanup(session.Close)

	kv := store.NewMemory(prefs)
	clip := &clipboard.Memory{}
	m := New(Options{
		Session:   session,
		Theme:     theme.New(kv, ui.Presenter(), logger.Discard()),
		Clipboard: clip,
		Version:   "0.0.0-test",
	})
	setSize(m, 100, 30)
	return &testEnv{m: m, prefs: kv, clip: clip}
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "esc", "ctrl+c", "ctrl+up"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.CtrlE:
		return tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	case keys.CtrlUp:
		return tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModCtrl}
	case keys.CtrlDown:
		return tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the resulting command.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) {
	for _, ch := range text {
		sendKey(m, string(ch))
	}
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) {
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

// findReply runs cmd, descending into batches, and returns the first ReplyMsg.
// Commands after the reply are not run, so a trailing tick never sleeps.
func findReply(t *testing.T, cmd tea.Cmd) ReplyMsg {
	t.Helper()
	if r, ok := collectReply(cmd); ok {
		return r
	}
	t.Fatal("command did not produce a ReplyMsg")
	return ReplyMsg{}
}

func collectReply(cmd tea.Cmd) (ReplyMsg, bool) {
	if cmd == nil {
		return ReplyMsg{}, false
	}
	switch msg := cmd().(type) {
	case ReplyMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if r, ok := collectReply(c); ok {
				return r, true
			}
		}
	}
	return ReplyMsg{}, false
}

// exchange types text, presses enter and feeds the reply back in.
func exchange(t *testing.T, m *Model, text string) tea.Cmd {
	t.Helper()
	typeText(m, text)
	reply := findReply(t, sendKey(m, keys.Enter))
	_, cmd := m.Update(reply)
	return cmd
}
