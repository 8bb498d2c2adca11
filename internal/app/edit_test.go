package app

import (
	"testing"

	"github.com/zhubert/banter/internal/keys"
)

func TestEdit_SaveSelected(t *testing.T) {
	env := newTestEnv(t, replyWith("ok"), nil)
	m := env.m
	exchange(t, m, "hello")

	sendKey(m, keys.CtrlUp)
	if id := m.chat.Selected(); id != "m1" {
		t.Fatalf("Selected() = %q, want m1", id)
	}

	sendKey(m, keys.CtrlE)
	if m.session.EditingID() != "m1" {
		t.Fatalf("EditingID() = %q, want m1", m.session.EditingID())
	}
	if !m.chat.IsEditing() {
		t.Error("chat should show the inline editor")
	}
	if m.chat.EditorValue() != "hello" {
		t.Errorf("EditorValue() = %q, want %q", m.chat.EditorValue(), "hello")
	}

	typeText(m, "!")
	if m.session.EditBuffer() != "hello!" {
		t.Errorf("EditBuffer() = %q, want the editor mirrored", m.session.EditBuffer())
	}
	sendKey(m, keys.Enter)

	msg, ok := m.session.Message("m1")
	if !ok {
		t.Fatal("edited message missing")
	}
	if msg.Text != "hello!" || msg.IsEditing {
		t.Errorf("message = %+v, want saved text and edit mode off", msg)
	}
	if m.session.EditingID() != "" || m.chat.IsEditing() {
		t.Error("edit state should be cleared after save")
	}
	if m.session.InFlight() {
		t.Error("saving an edit must not re-send")
	}
	if got := len(m.session.Messages()); got != 3 {
		t.Errorf("len(Messages()) = %d, want 3", got)
	}
}

func TestEdit_CtrlSSaves(t *testing.T) {
	env := newTestEnv(t, replyWith("ok"), nil)
	m := env.m
	exchange(t, m, "abc")

	sendKey(m, keys.CtrlE)
	typeText(m, "d")
	sendKey(m, keys.CtrlS)

	if msg, _ := m.session.Message("m1"); msg.Text != "abcd" {
		t.Errorf("Text = %q, want %q", msg.Text, "abcd")
	}
}

func TestEdit_Cancel(t *testing.T) {
	env := newTestEnv(t, replyWith("ok"), nil)
	m := env.m
	exchange(t, m, "hello")

	sendKey(m, keys.CtrlE)
	typeText(m, " world")
	sendKey(m, keys.Escape)

	msg, _ := m.session.Message("m1")
	if msg.Text != "hello" || msg.IsEditing {
		t.Errorf("message = %+v, want original text and edit mode off", msg)
	}
	if m.chat.IsEditing() {
		t.Error("editor should close on cancel")
	}
}

func TestEdit_DefaultsToLastUserMessage(t *testing.T) {
	env := newTestEnv(t, replyWith("ok"), nil)
	m := env.m
	exchange(t, m, "first")
	exchange(t, m, "second")

	sendKey(m, keys.CtrlE)
	if got := m.session.EditingID(); got != "m3" {
		t.Errorf("EditingID() = %q, want m3 (the newest user message)", got)
	}
}

func TestEdit_NothingToEdit(t *testing.T) {
	env := newTestEnv(t, replyWith("ok"), nil)

	if cmd := sendKey(env.m, keys.CtrlE); cmd != nil {
		t.Error("ctrl+e with no user messages should do nothing")
	}
	if env.m.session.EditingID() != "" {
		t.Error("no message should be in edit mode")
	}
}

func TestEdit_WhileRequestOutstanding(t *testing.T) {
	env := newTestEnv(t, replyWith("second reply"), nil)
	m := env.m
	exchange(t, m, "first")

	typeText(m, "second")
	cmd := sendKey(m, keys.Enter)

	sendKey(m, keys.CtrlUp)
	sendKey(m, keys.CtrlUp)
	if m.chat.Selected() != "m1" {
		t.Fatalf("Selected() = %q, want m1", m.chat.Selected())
	}
	sendKey(m, keys.CtrlE)
	typeText(m, "!")
	sendKey(m, keys.Enter)

	m.Update(findReply(t, cmd))

	if msg, _ := m.session.Message("m1"); msg.Text != "first!" {
		t.Errorf("Text = %q, want %q", msg.Text, "first!")
	}
	reply, _ := m.session.LastReply()
	if reply.Text != "second reply" {
		t.Errorf("LastReply().Text = %q, want %q", reply.Text, "second reply")
	}
}

func TestSelection_Navigation(t *testing.T) {
	env := newTestEnv(t, replyWith("ok"), nil)
	m := env.m
	exchange(t, m, "one")
	exchange(t, m, "two")

	steps := []struct {
		key  string
		want string
	}{
		{keys.CtrlUp, "m3"},
		{keys.CtrlUp, "m1"},
		{keys.CtrlUp, "m1"},
		{keys.CtrlDown, "m3"},
		{keys.CtrlDown, ""},
		{keys.CtrlUp, "m3"},
		{keys.Escape, ""},
	}
	for i, s := range steps {
		sendKey(m, s.key)
		if got := m.chat.Selected(); got != s.want {
			t.Fatalf("step %d (%s): Selected() = %q, want %q", i, s.key, got, s.want)
		}
	}
}
