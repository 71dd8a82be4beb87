package groups

import (
	"context"
	"regexp"
	"strings"
)

// Slugs appear in URLs (/group/{slug}): lowercase alphanumeric with
// single hyphens between segments.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const (
	maxSlugLength  = 50
	maxTitleLength = 200
)

type groupService struct {
	repo Repository
}

// NewGroupService creates a new group service
func NewGroupService(repo Repository) Service {
	return &groupService{repo: repo}
}

// Create registers a new group after validating slug and title
func (s *groupService) Create(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	slug := strings.TrimSpace(strings.ToLower(req.Slug))
	title := strings.TrimSpace(req.Title)

	if slug == "" {
		return nil, NewValidationError("slug", "slug is required")
	}
	if len(slug) > maxSlugLength {
		return nil, NewValidationError("slug", "slug must be at most 50 characters")
	}
	if !slugRegex.MatchString(slug) {
		return nil, NewValidationError("slug", "slug may contain only lowercase letters, digits and single hyphens")
	}
	if title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if len(title) > maxTitleLength {
		return nil, NewValidationError("title", "title must be at most 200 characters")
	}

	group := &Group{
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
	}

	// Repository translates duplicate constraint errors to ErrSlugTaken
	return s.repo.Create(ctx, group)
}

// GetByID retrieves a group by its id
func (s *groupService) GetByID(ctx context.Context, id int64) (*Group, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug retrieves a group by its slug
func (s *groupService) GetBySlug(ctx context.Context, slug string) (*Group, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetBySlug(ctx, slug)
}

// List returns all groups ordered by title
func (s *groupService) List(ctx context.Context) ([]*Group, error) {
	return s.repo.List(ctx)
}
