// Package widget models the portfolio chat widget: its open/closed state, the
// transcript it shows, and the single request it may have outstanding.
package widget

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/clio/backend/internal/model/chat"
	"github.com/zhouzirui/clio/backend/internal/sanitize"
)

// ConnectionFallback is shown when the proxy cannot be reached or answers with an error.
const ConnectionFallback = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment!"

// State is the visible widget state.
type State int

const (
	StateClosed State = iota
	StateOpenIdle
	StateOpenAwaiting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenIdle:
		return "open-idle"
	case StateOpenAwaiting:
		return "open-awaiting"
	default:
		return "unknown"
	}
}

// Key is a keyboard key the widget reacts to.
type Key string

const (
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
)

// Asker sends one query to the chat proxy and returns displayable markup.
type Asker interface {
	Ask(ctx context.Context, query string) (sanitize.HTML, error)
}

// Session holds the widget state for one visitor.
type Session struct {
	asker Asker
	now   func() time.Time

	mu         sync.Mutex
	open       bool
	loading    bool
	draft      string
	transcript []chat.Message
}

// NewSession creates a closed widget whose transcript starts with greeting.
func NewSession(asker Asker, greeting string) *Session {
	s := &Session{
		asker: asker,
		now:   time.Now,
	}
	if greeting != "" {
		s.transcript = append(s.transcript, s.newMessage(sanitize.Escape(greeting), chat.SenderAssistant))
	}
	return s
}

func (s *Session) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

// Close hides the widget. An in-flight request keeps running and its reply
// still lands in the transcript.
func (s *Session) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

func (s *Session) Toggle() {
	s.mu.Lock()
	s.open = !s.open
	s.mu.Unlock()
}

// SetDraft replaces the input box contents.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// State reports the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.open:
		return StateClosed
	case s.loading:
		return StateOpenAwaiting
	default:
		return StateOpenIdle
	}
}

func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Transcript returns a copy of the messages shown so far.
func (s *Session) Transcript() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.transcript...)
}

// Submit sends the current draft. It reports false without doing anything when
// the widget is closed, the draft is blank, or a request is already in flight.
// Otherwise it blocks until the reply (or the fallback apology) is appended.
func (s *Session) Submit(ctx context.Context) bool {
	s.mu.Lock()
	query := strings.TrimSpace(s.draft)
	if !s.open || s.loading || query == "" {
		s.mu.Unlock()
		return false
	}
	s.transcript = append(s.transcript, s.newMessage(sanitize.Escape(query), chat.SenderUser))
	s.draft = ""
	s.loading = true
	s.mu.Unlock()

	reply, err := s.asker.Ask(ctx, query)
	if err != nil {
		log.Printf("[widget] chat request failed: %v", err)
		reply = sanitize.Escape(ConnectionFallback)
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, s.newMessage(reply, chat.SenderAssistant))
	s.loading = false
	s.mu.Unlock()
	return true
}

// HandleKey applies a key press: Enter submits, Escape closes.
func (s *Session) HandleKey(ctx context.Context, key Key) {
	switch key {
	case KeyEnter:
		s.Submit(ctx)
	case KeyEscape:
		s.Close()
	}
}

func (s *Session) newMessage(text sanitize.HTML, sender chat.Sender) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.now(),
	}
}
