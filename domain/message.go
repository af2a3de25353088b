// Package domain contains the core concepts of the messaging system.
// Messages are immutable once created and validated by the domain.
package domain

import (
	"strings"
	"time"

	"chatline/errors"

	"github.com/google/uuid"
)

// Message is an immutable direct-message record between two users.
// CreatedAt is the sole sort key of a thread.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewMessage builds a validated message with a fresh ID and a UTC
// creation timestamp. At least one of text or imageURL must be present.
func NewMessage(senderID, receiverID, text, imageURL string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && imageURL == "" {
		return Message{}, errors.ErrMessageEmpty
	}
	return Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		ImageURL:   imageURL,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// ThreadKey returns the canonical identifier of the conversation between
// two users. The pair is unordered: ThreadKey(a, b) == ThreadKey(b, a).
func ThreadKey(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
