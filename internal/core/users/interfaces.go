package users

import "context"

// Repository defines the interface for user data persistence
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Service defines the interface for user business logic
type Service interface {
	// Register validates the request, hashes the password and persists
	// a new user. Returns ErrUsernameTaken for duplicate usernames.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate checks a username/password pair and returns the user
	// on success, ErrBadCredentials otherwise.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
