package feeds

import (
	"context"
	"fmt"

	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
)

type feedService struct {
	postRepo     posts.Repository
	groupService groups.Service
	userService  users.Service
	pageSize     int
}

// NewFeedService creates a new feed service. pageSize <= 0 falls back
// to DefaultPageSize.
func NewFeedService(postRepo posts.Repository, groupService groups.Service, userService users.Service, pageSize int) Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &feedService{
		postRepo:     postRepo,
		groupService: groupService,
		userService:  userService,
		pageSize:     pageSize,
	}
}

// Global returns one page of the global feed
func (s *feedService) Global(ctx context.Context, page int) (*Page, error) {
	return s.paginate(ctx, posts.ListFilter{}, page)
}

// Group returns a group and one page of its feed
func (s *feedService) Group(ctx context.Context, slug string, page int) (*groups.Group, *Page, error) {
	group, err := s.groupService.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	feed, err := s.paginate(ctx, posts.ListFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, nil, err
	}

	return group, feed, nil
}

// Author returns a user and one page of their feed
func (s *feedService) Author(ctx context.Context, username string, page int) (*users.User, *Page, error) {
	author, err := s.userService.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	feed, err := s.paginate(ctx, posts.ListFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, nil, err
	}

	return author, feed, nil
}

// paginate resolves the requested page number against the filtered
// total, then fetches exactly one window. The count and the window are
// two statements; a post created between them can shift the boundary by
// one, which is acceptable for a feed (no cursor stability is promised
// across requests).
func (s *feedService) paginate(ctx context.Context, filter posts.ListFilter, page int) (*Page, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	pages := totalPages(total, s.pageSize)
	number := clampPage(page, pages)
	offset := (number - 1) * s.pageSize

	items, err := s.postRepo.List(ctx, filter, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &Page{
		Posts:      items,
		Number:     number,
		Size:       s.pageSize,
		TotalPosts: total,
		TotalPages: pages,
		HasNext:    number < pages,
		HasPrev:    number > 1,
	}, nil
}
