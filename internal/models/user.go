package models

import "time"

// User captures application-facing fields for an authenticated identity.
// PasswordHash never leaves the server; the JSON projection excludes it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RefreshToken records a refresh token issued to a user. Rows are written on
// register/login/refresh and removed on logout.
type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
