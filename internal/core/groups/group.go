package groups

// Group is a named category that posts may belong to.
// Groups are created administratively (cmd/addgroup) and are read-only
// from the perspective of the posting core. Deleting a group detaches
// its posts rather than deleting them (ON DELETE SET NULL).
type Group struct {
	Slug        string `json:"slug" db:"slug"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	ID          int64  `json:"id" db:"id"`
}

// CreateGroupRequest represents input for creating a new group
type CreateGroupRequest struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
