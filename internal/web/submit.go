package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"Quill/internal/api/middleware"
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
)

// PostFormData holds data for the post form template, used by both the
// create and edit flows. Errors maps field name to message so the form
// re-renders with field-level feedback and no state change.
type PostFormData struct {
	Viewer  viewer
	Groups  []*groups.Group
	Errors  map[string]string
	Text    string
	GroupID string
	Edit    bool
	Post    *posts.Post // edit only
}

// NewPostForm handles GET /new and renders an empty post form.
func (h *Handlers) NewPostForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.emptyForm(r)
	if err != nil {
		h.serverError(w, "render post form", err)
		return
	}
	h.render(w, "post_form.html", form)
}

// NewPostSubmit handles POST /new.
// Valid submissions create exactly one post and redirect to the global
// feed; invalid ones re-render the form with errors and change nothing.
func (h *Handlers) NewPostSubmit(w http.ResponseWriter, r *http.Request) {
	text, groupRaw, groupID, groupErr := h.parsePostForm(r)

	form, err := h.emptyForm(r)
	if err != nil {
		h.serverError(w, "render post form", err)
		return
	}
	form.Text = text
	form.GroupID = groupRaw

	if groupErr != "" {
		form.Errors["group"] = groupErr
		h.render(w, "post_form.html", form)
		return
	}

	_, err = h.postService.Create(r.Context(), posts.CreatePostRequest{
		Text:     text,
		GroupID:  groupID,
		AuthorID: middleware.GetUserID(r),
	})
	if err != nil {
		if posts.IsValidationError(err) {
			form.Errors[posts.ValidationField(err)] = validationMessage(err)
			h.render(w, "post_form.html", form)
			return
		}
		h.serverError(w, "create post", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// EditPostForm handles GET /{username}/{postID}/edit.
// Non-owners are redirected to the post's readable view rather than
// shown an error page.
func (h *Handlers) EditPostForm(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	postID, ok := parsePostID(chi.URLParam(r, "postID"))
	if !ok {
		h.notFound(w, r)
		return
	}

	post, err := h.postService.GetForAuthor(r.Context(), username, postID)
	if err != nil {
		if posts.IsNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, "load post for edit", err)
		return
	}

	if posts.AuthorizeEdit(post, middleware.GetUserID(r)) != posts.EditAllowed {
		http.Redirect(w, r, postPath(post), http.StatusFound)
		return
	}

	form, err := h.emptyForm(r)
	if err != nil {
		h.serverError(w, "render edit form", err)
		return
	}
	form.Edit = true
	form.Post = post
	form.Text = post.Text
	if post.GroupID != nil {
		form.GroupID = strconv.FormatInt(*post.GroupID, 10)
	}

	h.render(w, "post_form.html", form)
}

// EditPostSubmit handles POST /{username}/{postID}/edit.
// Every outcome ends at the single-post view: success redirects there,
// a non-owner is redirected there without mutation, and a validation
// failure re-renders the form.
func (h *Handlers) EditPostSubmit(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	postID, ok := parsePostID(chi.URLParam(r, "postID"))
	if !ok {
		h.notFound(w, r)
		return
	}

	// Resolve through the path's author so a mismatched username 404s
	// before any ownership decision leaks.
	post, err := h.postService.GetForAuthor(r.Context(), username, postID)
	if err != nil {
		if posts.IsNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, "load post for edit", err)
		return
	}

	text, groupRaw, groupID, groupErr := h.parsePostForm(r)

	renderForm := func(field, message string) {
		form, err := h.emptyForm(r)
		if err != nil {
			h.serverError(w, "render edit form", err)
			return
		}
		form.Edit = true
		form.Post = post
		form.Text = text
		form.GroupID = groupRaw
		form.Errors[field] = message
		h.render(w, "post_form.html", form)
	}

	if groupErr != "" {
		renderForm("group", groupErr)
		return
	}

	updated, err := h.postService.Update(r.Context(), posts.UpdatePostRequest{
		PostID:   postID,
		EditorID: middleware.GetUserID(r),
		Text:     text,
		GroupID:  groupID,
	})
	if err != nil {
		switch {
		case err == posts.ErrNotOwner:
			http.Redirect(w, r, postPath(post), http.StatusFound)
		case posts.IsNotFound(err):
			h.notFound(w, r)
		case posts.IsValidationError(err):
			renderForm(posts.ValidationField(err), validationMessage(err))
		default:
			h.serverError(w, "update post", err)
		}
		return
	}

	http.Redirect(w, r, postPath(updated), http.StatusFound)
}

// emptyForm builds the base form data with the group picker populated
func (h *Handlers) emptyForm(r *http.Request) (PostFormData, error) {
	allGroups, err := h.groupService.List(r.Context())
	if err != nil {
		return PostFormData{}, err
	}
	return PostFormData{
		Viewer: currentViewer(r),
		Groups: allGroups,
		Errors: make(map[string]string),
	}, nil
}

// parsePostForm extracts text and the optional group selection.
// Returns the raw group value so an invalid selection can be re-shown.
func (h *Handlers) parsePostForm(r *http.Request) (text, groupRaw string, groupID *int64, groupErr string) {
	if err := r.ParseForm(); err != nil {
		return "", "", nil, "invalid form submission"
	}

	text = r.PostFormValue("text")
	groupRaw = strings.TrimSpace(r.PostFormValue("group"))
	if groupRaw == "" {
		return text, "", nil, ""
	}

	id, err := strconv.ParseInt(groupRaw, 10, 64)
	if err != nil || id < 1 {
		return text, groupRaw, nil, "group does not exist"
	}
	return text, groupRaw, &id, ""
}

// postPath builds the canonical single-post URL
func postPath(post *posts.Post) string {
	return fmt.Sprintf("/%s/%d", post.Author.Username, post.ID)
}

// validationMessage strips the "validation error (field):" prefix for
// display next to the field itself.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "): "); i >= 0 {
		return msg[i+3:]
	}
	return msg
}
