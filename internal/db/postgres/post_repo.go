package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"Quill/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// postColumns is the select list shared by every post query: the post
// row joined with its author and (optionally) its group.
const postColumns = `
	p.id, p.text, p.pub_date, p.author_id, p.group_id,
	u.username,
	g.slug, g.title`

const postJoins = `
	FROM posts p
	INNER JOIN users u ON p.author_id = u.id
	LEFT JOIN groups g ON p.group_id = g.id`

// Create inserts a new post. The store assigns id and pub_date; the
// returned post has author and group hydrated.
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (text, author_id, group_id)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date
	`

	err := r.db.QueryRowContext(ctx, query, post.Text, post.AuthorID, post.GroupID).
		Scan(&post.ID, &post.PubDate)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			if strings.Contains(err.Error(), "posts_author_id_fkey") {
				return nil, posts.ErrAuthorRequired
			}
			if strings.Contains(err.Error(), "posts_group_id_fkey") {
				return nil, posts.NewValidationError("group", "group does not exist")
			}
		}
		if strings.Contains(err.Error(), "posts_text_not_blank") {
			return nil, posts.NewValidationError("text", "text must not be empty")
		}
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	// Re-read through the join so the caller gets author/group refs
	return r.GetByID(ctx, post.ID)
}

// GetByID retrieves a post with author and group hydrated
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `SELECT` + postColumns + postJoins + `
	WHERE p.id = $1`

	post, err := r.scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// List returns one window of posts matching filter, newest first.
// Ordering is pub_date DESC with id DESC as the tie-break so pagination
// boundaries are deterministic even for equal timestamps.
func (r *postgresPostRepo) List(ctx context.Context, filter posts.ListFilter, limit, offset int) ([]*posts.Post, error) {
	where, args := buildPostFilter(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT%s%s
	%s
	ORDER BY p.pub_date DESC, p.id DESC
	LIMIT $%d OFFSET $%d`, postColumns, postJoins, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", "error", closeErr)
		}
	}()

	var result []*posts.Post
	for rows.Next() {
		post, err := r.scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// Count returns the total number of posts matching filter
func (r *postgresPostRepo) Count(ctx context.Context, filter posts.ListFilter) (int, error) {
	where, args := buildPostFilter(filter)
	query := "SELECT COUNT(*) FROM posts p " + where

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

// Update sets text and group_id in a single statement. author_id and
// pub_date are deliberately absent from the SET list: the edit workflow
// never touches them.
func (r *postgresPostRepo) Update(ctx context.Context, id int64, text string, groupID *int64) (*posts.Post, error) {
	query := `
		UPDATE posts
		SET text = $2, group_id = $3
		WHERE id = $1
		RETURNING id
	`

	var updatedID int64
	err := r.db.QueryRowContext(ctx, query, id, text, groupID).Scan(&updatedID)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key constraint") &&
			strings.Contains(err.Error(), "posts_group_id_fkey") {
			return nil, posts.NewValidationError("group", "group does not exist")
		}
		if strings.Contains(err.Error(), "posts_text_not_blank") {
			return nil, posts.NewValidationError("text", "text must not be empty")
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// buildPostFilter renders a ListFilter as a WHERE clause. The zero
// filter is the global feed and yields no clause.
func buildPostFilter(filter posts.ListFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conditions = append(conditions, fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// scanner abstracts *sql.Row and *sql.Rows for the shared select list
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresPostRepo) scanPost(row scanner) (*posts.Post, error) {
	var (
		post      posts.Post
		author    posts.AuthorRef
		groupID   sql.NullInt64
		groupSlug sql.NullString
		groupTitl sql.NullString
	)

	err := row.Scan(
		&post.ID, &post.Text, &post.PubDate, &author.ID, &groupID,
		&author.Username,
		&groupSlug, &groupTitl,
	)
	if err != nil {
		return nil, err
	}

	post.AuthorID = author.ID
	post.Author = &author

	if groupID.Valid {
		post.GroupID = &groupID.Int64
		post.Group = &posts.GroupRef{
			ID:    groupID.Int64,
			Slug:  groupSlug.String,
			Title: groupTitl.String,
		}
	}

	return &post, nil
}
