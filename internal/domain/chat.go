// Package domain defines the core domain models for the trip-planning backend.
package domain

import "github.com/pkg/errors"

// MessageSender identifies who produced a message.
type MessageSender string

const (
	SenderUser  MessageSender = "user"
	SenderModel MessageSender = "model"
)

// DeliveryStatus tracks message delivery state.
type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliverySeen      DeliveryStatus = "seen"
)

// Chat is a persisted conversation, one per assistant session.
// LastMessage and LastSender are denormalized and updated best-effort
// on every message write.
type Chat struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	LastMessage string        `json:"last_message,omitempty"`
	LastSender  MessageSender `json:"last_sender,omitempty"`
	Timestamp   int64         `json:"timestamp"`
}

// Message is a single persisted chat message. Timestamp is unix milliseconds.
type Message struct {
	MessageID      string         `json:"message_id"`
	ChatID         string         `json:"chat_id"`
	Timestamp      int64          `json:"timestamp"`
	Sender         MessageSender  `json:"sender"`
	Text           string         `json:"text,omitempty"`
	Attachment     string         `json:"attachment,omitempty"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
}

// Validate checks the message invariants before it reaches storage.
func (m *Message) Validate() error {
	if m.ChatID == "" {
		return errors.New("chat_id is required")
	}
	if m.Sender != SenderUser && m.Sender != SenderModel {
		return errors.Errorf("invalid sender %q", m.Sender)
	}
	if m.Text == "" && m.Attachment == "" {
		return errors.New("either text or attachment must be provided")
	}
	return nil
}
