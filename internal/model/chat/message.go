package chat

import (
	"time"

	"github.com/zhouzirui/clio/backend/internal/sanitize"
)

// Sender identifies who authored a transcript entry.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one immutable turn in the widget transcript.
type Message struct {
	ID        string        `json:"id"`
	Text      sanitize.HTML `json:"text"`
	Sender    Sender        `json:"sender"`
	Timestamp time.Time     `json:"timestamp"`
}
