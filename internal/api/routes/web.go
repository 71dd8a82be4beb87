package routes

import (
	"github.com/go-chi/chi/v5"

	"Quill/internal/api/middleware"
	"Quill/internal/web"
)

// RegisterWebRoutes registers every page route for the Quill frontend.
// Static routes (/new, /group, /auth) are registered before the
// /{username} wildcards; chi resolves static segments first so the
// profile route never shadows them.
func RegisterWebRoutes(r chi.Router, h *web.Handlers, sessions *middleware.SessionManager) {
	r.NotFound(h.NotFound)

	// Feeds and single-post view: anonymous and signed-in requests see
	// identical data.
	r.Get("/", h.Index)
	r.Get("/group/{slug}", h.GroupFeed)

	// Auth flow
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", h.LoginForm)
		r.Post("/login", h.LoginSubmit)
		r.Post("/logout", h.Logout)
		r.Get("/signup", h.SignupForm)
		r.Post("/signup", h.SignupSubmit)
	})

	// Submission workflow: signed-in only; anonymous requests are
	// redirected to login with a resumption target.
	r.With(sessions.RequireAuth).Get("/new", h.NewPostForm)
	r.With(sessions.RequireAuth).Post("/new", h.NewPostSubmit)

	r.Get("/{username}", h.Profile)
	r.Get("/{username}/{postID}", h.PostView)
	r.With(sessions.RequireAuth).Get("/{username}/{postID}/edit", h.EditPostForm)
	r.With(sessions.RequireAuth).Post("/{username}/{postID}/edit", h.EditPostSubmit)
}
