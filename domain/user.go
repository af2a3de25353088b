package domain

import "time"

// User is an identity record. PasswordHash never leaves the backend.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the public projection of a user, safe to embed in any
// response.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// PublicProfile strips a user down to its shareable fields.
func (u User) PublicProfile() Profile {
	return Profile{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}
