package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserSummary is the public projection of a User embedded in poll and comment responses.
type UserSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token    string `json:"token"`
	UserID   string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
