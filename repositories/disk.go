package repositories

import (
	"time"

	"chatline/domain"

	"github.com/google/uuid"
)

// diskMessage is the on-disk shape of a message. Kept separate from
// domain.Message so the storage encoding can evolve without touching the
// API surface.
type diskMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Text       string `json:"text,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	At         int64  `json:"at"`
}

func (dm diskMessage) toDomain() (domain.Message, error) {
	parsedID, err := uuid.Parse(dm.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:         parsedID,
		SenderID:   dm.SenderID,
		ReceiverID: dm.ReceiverID,
		Text:       dm.Text,
		ImageURL:   dm.ImageURL,
		CreatedAt:  time.Unix(0, dm.At).UTC(),
	}, nil
}

// diskUser carries the password hash, which the domain struct
// deliberately refuses to serialize.
type diskUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

func (du diskUser) toDomain() domain.User {
	return domain.User{
		ID:           du.ID,
		Name:         du.Name,
		Email:        du.Email,
		PasswordHash: du.PasswordHash,
		AvatarURL:    du.AvatarURL,
		CreatedAt:    time.Unix(0, du.CreatedAt).UTC(),
	}
}

func fromDomainUser(u domain.User) diskUser {
	return diskUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt.UnixNano(),
	}
}
