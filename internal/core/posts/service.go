package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"Quill/internal/api/middleware"
	"Quill/internal/core/groups"
)

// maxTextLength bounds post bodies; generous for a text blog
const maxTextLength = 100000

type postService struct {
	repo         Repository
	groupService groups.Service
}

// NewPostService creates a new post service
func NewPostService(repo Repository, groupService groups.Service) Service {
	return &postService{
		repo:         repo,
		groupService: groupService,
	}
}

// Create validates and persists a new post
// Flow:
// 1. Validate text and author
// 2. Verify acting principal in context matches the request author
// 3. Resolve the group reference if one was provided
// 4. Insert; the store assigns id and pub_date
func (s *postService) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := s.validateText(req.Text); err != nil {
		return nil, err
	}

	if req.AuthorID == 0 {
		return nil, ErrAuthorRequired
	}

	// Defense-in-depth: the handler sets AuthorID from the session, but
	// verify the service sees the same principal even if a caller is
	// wired up wrong.
	if actingID := middleware.GetAuthenticatedUserID(ctx); actingID != 0 && actingID != req.AuthorID {
		slog.Warn("post create principal mismatch",
			"authenticated", actingID, "request", req.AuthorID)
		return nil, fmt.Errorf("authenticated user does not match post author")
	}

	groupID, err := s.resolveGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	post := &Post{
		Text:     strings.TrimSpace(req.Text),
		AuthorID: req.AuthorID,
		GroupID:  groupID,
	}

	return s.repo.Create(ctx, post)
}

// Get retrieves a single post by id
func (s *postService) Get(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForAuthor retrieves a post by id scoped to the named author.
// A post whose author does not match the username in the path is
// reported as not found, never as someone else's post.
func (s *postService) GetForAuthor(ctx context.Context, username string, id int64) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	username = strings.TrimSpace(strings.ToLower(username))
	if post.Author == nil || post.Author.Username != username {
		return nil, ErrNotFound
	}

	return post, nil
}

// Update applies an edit to an existing post's text and group.
// The ownership rule runs before validation so a non-owner learns
// nothing about whether their input would have been accepted. On any
// failure the stored post is untouched; the update itself is a single
// statement, so concurrent edits by the same author race at
// last-write-wins granularity with no partial writes.
func (s *postService) Update(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	switch AuthorizeEdit(post, req.EditorID) {
	case EditNotFound:
		return nil, ErrNotFound
	case EditForbidden:
		return nil, ErrNotOwner
	}

	if err := s.validateText(req.Text); err != nil {
		return nil, err
	}

	groupID, err := s.resolveGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, req.PostID, strings.TrimSpace(req.Text), groupID)
}

// validateText enforces the core invariant: text is never empty or
// whitespace-only.
func (s *postService) validateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return NewValidationError("text", "text must not be empty")
	}
	if len(trimmed) > maxTextLength {
		return NewValidationError("text",
			fmt.Sprintf("text too long (max %d characters)", maxTextLength))
	}
	return nil
}

// resolveGroup checks that an optional group reference points at an
// existing group. Returns the id unchanged when valid, nil when absent.
func (s *postService) resolveGroup(ctx context.Context, groupID *int64) (*int64, error) {
	if groupID == nil {
		return nil, nil
	}

	if _, err := s.groupService.GetByID(ctx, *groupID); err != nil {
		if groups.IsNotFound(err) {
			return nil, NewValidationError("group", "group does not exist")
		}
		return nil, fmt.Errorf("failed to resolve group: %w", err)
	}

	return groupID, nil
}
