package types

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderCompanion Sender = "companion"
)

type MessageID string

// NewMessageID generates a new unique MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

// Message is one immutable entry of the conversation log.
type Message struct {
	ID        MessageID `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sender    Sender    `json:"sender"`
}

// NewMessage builds a message stamped with a fresh ID.
func NewMessage(sender Sender, content string, now time.Time) Message {
	return Message{
		ID:        NewMessageID(),
		Content:   content,
		Timestamp: now,
		Sender:    sender,
	}
}
