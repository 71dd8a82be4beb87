package posts

import (
	"time"
)

// Post is a single authored text entry, optionally assigned to a group.
//
// text and group are the only mutable fields, and only through the edit
// workflow restricted to the owning author. pub_date is set exactly
// once at creation; author never changes.
type Post struct {
	PubDate  time.Time `json:"pubDate" db:"pub_date"`
	Text     string    `json:"text" db:"text"`
	Author   *AuthorRef `json:"author"`
	Group    *GroupRef  `json:"group,omitempty"`
	GroupID  *int64     `json:"-" db:"group_id"`
	ID       int64      `json:"id" db:"id"`
	AuthorID int64      `json:"-" db:"author_id"`
}

// AuthorRef carries the author fields feeds and post views need,
// hydrated by the repository join.
type AuthorRef struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// GroupRef carries the group fields feeds and post views need,
// hydrated by the repository join. Nil when the post has no group.
type GroupRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	ID    int64  `json:"id"`
}

// CreatePostRequest represents input for creating a new post.
// AuthorID is set by the handler from the authenticated session, never
// from client input.
type CreatePostRequest struct {
	GroupID  *int64 `json:"groupId,omitempty"`
	Text     string `json:"text"`
	AuthorID int64  `json:"-"`
}

// UpdatePostRequest represents input for editing an existing post.
// EditorID is the acting principal; the service rejects the edit unless
// it matches the post's author.
type UpdatePostRequest struct {
	GroupID  *int64 `json:"groupId,omitempty"`
	Text     string `json:"text"`
	PostID   int64  `json:"-"`
	EditorID int64  `json:"-"`
}

// ListFilter selects the base filter a feed applies before pagination.
// The zero value is the global feed.
type ListFilter struct {
	GroupID  *int64
	AuthorID *int64
}
