package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Quill/internal/api/middleware"
	"Quill/internal/core/feeds"
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
)

// Handlers provides HTTP handlers for the Quill web interface: the
// three feeds, the single-post view, the submission workflow and the
// auth flow.
type Handlers struct {
	templates    *Templates
	feedService  feeds.Service
	postService  posts.Service
	groupService groups.Service
	userService  users.Service
	sessions     *middleware.SessionManager
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(
	templates *Templates,
	feedService feeds.Service,
	postService posts.Service,
	groupService groups.Service,
	userService users.Service,
	sessions *middleware.SessionManager,
) *Handlers {
	return &Handlers{
		templates:    templates,
		feedService:  feedService,
		postService:  postService,
		groupService: groupService,
		userService:  userService,
		sessions:     sessions,
	}
}

// viewer carries the signed-in state every page shows in its nav
type viewer struct {
	Username string
	LoggedIn bool
}

func currentViewer(r *http.Request) viewer {
	name := middleware.GetUsername(r)
	return viewer{Username: name, LoggedIn: name != ""}
}

// FeedPageData holds data for the feed templates (index, group, profile).
type FeedPageData struct {
	Viewer viewer
	Page   *feeds.Page
	Group  *groups.Group // group feed only
	Author *users.User   // profile feed only
	// BasePath is the feed URL pagination links append ?page=N to
	BasePath string
}

// Index handles GET / and renders the global feed.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.notFound(w, r)
		return
	}

	page, err := h.feedService.Global(r.Context(), feeds.ParsePageParam(r.URL.Query().Get("page")))
	if err != nil {
		h.serverError(w, "render global feed", err)
		return
	}

	h.render(w, "index.html", FeedPageData{
		Viewer:   currentViewer(r),
		Page:     page,
		BasePath: "/",
	})
}

// GroupFeed handles GET /group/{slug} and renders one group's feed.
func (h *Handlers) GroupFeed(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	group, page, err := h.feedService.Group(r.Context(), slug, feeds.ParsePageParam(r.URL.Query().Get("page")))
	if err != nil {
		if groups.IsNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, "render group feed", err)
		return
	}

	h.render(w, "group.html", FeedPageData{
		Viewer:   currentViewer(r),
		Page:     page,
		Group:    group,
		BasePath: "/group/" + group.Slug,
	})
}

// Profile handles GET /{username} and renders one author's feed.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	author, page, err := h.feedService.Author(r.Context(), username, feeds.ParsePageParam(r.URL.Query().Get("page")))
	if err != nil {
		if users.IsNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, "render profile feed", err)
		return
	}

	h.render(w, "profile.html", FeedPageData{
		Viewer:   currentViewer(r),
		Page:     page,
		Author:   author,
		BasePath: "/" + author.Username,
	})
}

// PostPageData holds data for the single-post view.
type PostPageData struct {
	Viewer  viewer
	Post    *posts.Post
	CanEdit bool
}

// PostView handles GET /{username}/{postID}.
// A post id that exists but belongs to a different author than the one
// in the path is reported as not found.
func (h *Handlers) PostView(w http.ResponseWriter, r *http.Request) {
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
		h.serverError(w, "render post view", err)
		return
	}

	h.render(w, "post.html", PostPageData{
		Viewer:  currentViewer(r),
		Post:    post,
		CanEdit: posts.AuthorizeEdit(post, middleware.GetUserID(r)) == posts.EditAllowed,
	})
}

// parsePostID parses the {postID} path segment. Non-numeric ids are a
// not-found, not a server error.
func parsePostID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *Handlers) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.Render(w, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.templates.Render(w, "notfound.html", struct{ Viewer viewer }{currentViewer(r)}); err != nil {
		slog.Error("failed to render 404 page", "error", err)
	}
}

// NotFound is the router-level fallback for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

func (h *Handlers) serverError(w http.ResponseWriter, action string, err error) {
	slog.Error("web handler failed", "action", action, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
