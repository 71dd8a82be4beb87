package posts

// EditDecision is the outcome of the ownership check on a mutation.
// It is a named variant rather than a bool so callers can choose their
// own failure surface: the web layer redirects non-owners to the post's
// readable view, while a stricter API surface could return 403 from the
// same decision.
type EditDecision int

const (
	// EditAllowed means the acting principal owns the post
	EditAllowed EditDecision = iota

	// EditForbidden means the post exists but the principal is not its author
	EditForbidden

	// EditNotFound means there is no post to edit
	EditNotFound
)

// AuthorizeEdit decides whether editorID may mutate post.
// Ownership is compared by stable user id, not by username, so the rule
// stays unambiguous even if usernames were ever reused.
func AuthorizeEdit(post *Post, editorID int64) EditDecision {
	if post == nil {
		return EditNotFound
	}
	if post.AuthorID != editorID {
		return EditForbidden
	}
	return EditAllowed
}
