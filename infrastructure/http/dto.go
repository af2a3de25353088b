package http

import (
	"time"

	"chatline/domain"
	"chatline/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Image string `json:"image"`
}

type SendMessageRequest struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type MessageItem struct {
	ID         string       `json:"id"`
	SenderID   string       `json:"sender_id"`
	ReceiverID string       `json:"receiver_id"`
	Text       string       `json:"text,omitempty"`
	ImageURL   string       `json:"image_url,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	Sender     *ProfileItem `json:"sender,omitempty"`
	Receiver   *ProfileItem `json:"receiver,omitempty"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

func toProfileItem(p *domain.Profile) *ProfileItem {
	if p == nil {
		return nil
	}
	return &ProfileItem{ID: p.ID, Name: p.Name, AvatarURL: p.AvatarURL}
}

func toMessageItem(e services.ThreadEntry) MessageItem {
	return MessageItem{
		ID:         e.Message.ID.String(),
		SenderID:   e.Message.SenderID,
		ReceiverID: e.Message.ReceiverID,
		Text:       e.Message.Text,
		ImageURL:   e.Message.ImageURL,
		CreatedAt:  e.Message.CreatedAt,
		Sender:     toProfileItem(e.Sender),
		Receiver:   toProfileItem(e.Receiver),
	}
}

func toCreatedMessageItem(m domain.Message) MessageItem {
	return MessageItem{
		ID:         m.ID.String(),
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		ImageURL:   m.ImageURL,
		CreatedAt:  m.CreatedAt,
	}
}
