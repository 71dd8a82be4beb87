package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"Quill/internal/core/groups"
)

type postgresGroupRepo struct {
	db *sql.DB
}

// NewGroupRepository creates a new PostgreSQL group repository
func NewGroupRepository(db *sql.DB) groups.Repository {
	return &postgresGroupRepo{db: db}
}

// Create inserts a new group
func (r *postgresGroupRepo) Create(ctx context.Context, group *groups.Group) (*groups.Group, error) {
	query := `
		INSERT INTO groups (slug, title, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, group.Slug, group.Title, group.Description).
		Scan(&group.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "groups_slug_key") {
			return nil, groups.ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its id
func (r *postgresGroupRepo) GetByID(ctx context.Context, id int64) (*groups.Group, error) {
	group := &groups.Group{}
	query := `SELECT id, slug, title, description FROM groups WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&group.ID, &group.Slug, &group.Title, &group.Description)

	if err == sql.ErrNoRows {
		return nil, groups.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by id: %w", err)
	}

	return group, nil
}

// GetBySlug retrieves a group by its slug
func (r *postgresGroupRepo) GetBySlug(ctx context.Context, slug string) (*groups.Group, error) {
	group := &groups.Group{}
	query := `SELECT id, slug, title, description FROM groups WHERE slug = $1`

	err := r.db.QueryRowContext(ctx, query, slug).
		Scan(&group.ID, &group.Slug, &group.Title, &group.Description)

	if err == sql.ErrNoRows {
		return nil, groups.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by slug: %w", err)
	}

	return group, nil
}

// List returns all groups ordered by title
func (r *postgresGroupRepo) List(ctx context.Context) ([]*groups.Group, error) {
	query := `SELECT id, slug, title, description FROM groups ORDER BY title, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", "error", closeErr)
		}
	}()

	var result []*groups.Group
	for rows.Next() {
		group := &groups.Group{}
		if err := rows.Scan(&group.ID, &group.Slug, &group.Title, &group.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		result = append(result, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return result, nil
}
