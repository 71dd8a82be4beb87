package feeds

import (
	"context"

	"Quill/internal/core/groups"
	"Quill/internal/core/users"
)

// Service produces paginated, filtered views over posts. The three
// feeds share one pagination contract; only the base filter differs.
type Service interface {
	// Global returns one page of all posts, newest first
	Global(ctx context.Context, page int) (*Page, error)

	// Group returns the group and one page of its posts.
	// Returns groups.ErrGroupNotFound for an unknown slug.
	Group(ctx context.Context, slug string, page int) (*groups.Group, *Page, error)

	// Author returns the author and one page of their posts.
	// Returns users.ErrUserNotFound for an unknown username.
	Author(ctx context.Context, username string, page int) (*users.User, *Page, error)
}
