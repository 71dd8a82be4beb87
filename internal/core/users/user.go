package users

import (
	"time"
)

// User is an account tracked in the Quill database.
// Only the fields the content core needs are modeled here: a stable
// identifier, a unique username, and the credential hash used by the
// login flow. Everything else about identity lives in the web layer.
type User struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ID           int64     `json:"id" db:"id"`
}

// RegisterRequest represents the input for creating a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
