package groups

import "context"

// Repository defines the interface for group data persistence
type Repository interface {
	Create(ctx context.Context, group *Group) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)

	// List returns all groups ordered by title, for the post form's
	// group picker. The group catalog is small and administrative.
	List(ctx context.Context) ([]*Group, error)
}

// Service defines the interface for group business logic
type Service interface {
	// Create registers a new group. Administrative operation, invoked
	// by cmd/addgroup rather than any web route.
	Create(ctx context.Context, req CreateGroupRequest) (*Group, error)

	GetByID(ctx context.Context, id int64) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]*Group, error)
}
