package store

import (
	"errors"
	"sync"
	"time"

	"finqa/types"
)

var ErrNoContext = errors.New("no document has been processed yet")

// TruncationMarker is appended to a context cut down to the configured size.
const TruncationMarker = "\n[Context truncated]"

// Session holds the state of one user: the active document context and the
// chat transcript. A new upload replaces the context; the transcript keeps
// growing.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	context  *types.Extraction
	messages []types.Message
	lastSeen time.Time
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		lastSeen:  now,
	}
}

func (s *Session) SetContext(e types.Extraction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = &e
}

// Context returns a copy of the active extraction.
func (s *Session) Context() (types.Extraction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.context == nil {
		return types.Extraction{}, false
	}
	return *s.context, true
}

func (s *Session) HasContext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context != nil && s.context.Content != ""
}

// Truncated returns the active context cut to max characters.
func (s *Session) Truncated(max int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.context == nil || s.context.Content == "" {
		return "", ErrNoContext
	}
	return Truncate(s.context.Content, max), nil
}

func (s *Session) Append(role types.Role, content string) types.Message {
	msg := types.Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return msg
}

func (s *Session) Messages() []types.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// Truncate keeps the first max runes of content and appends the marker when
// anything was cut. A non-positive max disables truncation.
func Truncate(content string, max int) string {
	if max <= 0 {
		return content
	}
	r := []rune(content)
	if len(r) <= max {
		return content
	}
	return string(r[:max]) + TruncationMarker
}
