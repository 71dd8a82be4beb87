package users

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Usernames must start/end with alphanumeric and may contain hyphens
// and underscores in between. They appear in URLs (/{username}) so the
// character set is deliberately narrow.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9_-]*[a-zA-Z0-9])?$`)

const (
	maxUsernameLength = 30
	minPasswordLength = 8
)

type userService struct {
	repo Repository
}

// NewUserService creates a new user service
func NewUserService(repo Repository) Service {
	return &userService{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := s.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(strings.ToLower(req.Username))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		PasswordHash: string(hash),
	}

	// Repository translates duplicate constraint errors to ErrUsernameTaken
	return s.repo.Create(ctx, user)
}

// Authenticate verifies a username/password pair
func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || password == "" {
		return nil, ErrBadCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	return user, nil
}

// GetByID retrieves a user by their id
func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by their username
func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, ErrUserNotFound
	}

	return s.repo.GetByUsername(ctx, username)
}

func (s *userService) validateRegisterRequest(req RegisterRequest) error {
	username := strings.TrimSpace(strings.ToLower(req.Username))

	if username == "" {
		return NewValidationError("username", "username is required")
	}

	if len(username) > maxUsernameLength {
		return NewValidationError("username", "username must be at most 30 characters")
	}

	if !usernameRegex.MatchString(username) {
		return NewValidationError("username", "username may contain only letters, digits, hyphens and underscores, and must start and end with a letter or digit")
	}

	if len(req.Password) < minPasswordLength {
		return NewValidationError("password", "password must be at least 8 characters")
	}

	return nil
}
