package posts

import "context"

// Service defines the business logic interface for posts.
// It owns the submission workflow: validation, ownership enforcement
// and persistence of create/edit operations.
type Service interface {
	// Create validates and persists a new post owned by req.AuthorID.
	// pub_date is assigned by the store at insert time.
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)

	// Get retrieves a single post by id with author and group hydrated
	Get(ctx context.Context, id int64) (*Post, error)

	// GetForAuthor retrieves a post by id and verifies it belongs to
	// the named author. Returns ErrNotFound on any mismatch so the
	// caller cannot distinguish a wrong username from a missing post.
	GetForAuthor(ctx context.Context, username string, id int64) (*Post, error)

	// Update applies an edit to text and group. Author and pub_date are
	// never touched. Returns ErrNotOwner when req.EditorID does not own
	// the post; no mutation happens in that case.
	Update(ctx context.Context, req UpdatePostRequest) (*Post, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post and fills in its assigned id and pub_date
	Create(ctx context.Context, post *Post) (*Post, error)

	// GetByID retrieves a post with author and group hydrated.
	// Returns ErrNotFound if no such post exists.
	GetByID(ctx context.Context, id int64) (*Post, error)

	// List returns one window of posts matching filter, ordered by
	// pub_date descending with id descending as the tie-break. The
	// ordering is the contract every feed relies on and must be stable.
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Post, error)

	// Count returns the total number of posts matching filter
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Update sets text and group_id on an existing post in a single
	// statement. Returns ErrNotFound if no such post exists.
	Update(ctx context.Context, id int64, text string, groupID *int64) (*Post, error)
}
