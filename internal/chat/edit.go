package chat

import berrors "github.com/zhubert/banter/internal/errors"

// BeginEdit puts the user message id into edit mode and seeds the edit buffer
// with its text, which is returned. At most one message is in edit mode; any
// other is taken out of it without changing its text. Edit mode lasts until
// SaveEdit or CancelEdit.
func (s *Session) BeginEdit(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return "", berrors.MessageNotFound(id)
	}
	if !s.messages[i].IsUser() {
		return "", berrors.MessageNotEditable(id)
	}

	if s.editingID != "" && s.editingID != id {
		if j := s.indexOf(s.editingID); j >= 0 {
			s.messages[j].IsEditing = false
		}
	}
	s.messages[i].IsEditing = true
	s.editingID = id
	s.editBuffer = s.messages[i].Text
	return s.editBuffer, nil
}

// SetEditBuffer replaces the pending edit text.
func (s *Session) SetEditBuffer(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editBuffer = text
}

// EditBuffer returns the pending edit text.
func (s *Session) EditBuffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editBuffer
}

// EditingID returns the id of the message in edit mode, or "".
func (s *Session) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// SaveEdit replaces the text of message id with the edit buffer and leaves
// edit mode. Nothing is re-sent to the provider.
func (s *Session) SaveEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return berrors.MessageNotFound(id)
	}
	if s.editingID != id {
		return berrors.MessageNotEditing(id)
	}

	s.messages[i].Text = s.editBuffer
	s.messages[i].IsEditing = false
	s.editingID = ""
	s.editBuffer = ""
	s.log.Debug("message edited", "messageID", id)
	return nil
}

// CancelEdit leaves edit mode for message id without touching its text.
func (s *Session) CancelEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return berrors.MessageNotFound(id)
	}
	s.messages[i].IsEditing = false
	if s.editingID == id {
		s.editingID = ""
		s.editBuffer = ""
	}
	return nil
}
