package web

import (
	"errors"
	"net/http"

	"Quill/internal/api/middleware"
	"Quill/internal/core/users"
)

// AuthPageData holds data for the login and signup templates.
type AuthPageData struct {
	Viewer   viewer
	Errors   map[string]string
	Username string
	Next     string
}

// LoginForm handles GET /auth/login.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", AuthPageData{
		Viewer: currentViewer(r),
		Errors: make(map[string]string),
		Next:   middleware.SafeNextPath(r.URL.Query().Get("next")),
	})
}

// LoginSubmit handles POST /auth/login. On success the user is returned
// to the page that sent them here (same-site paths only).
func (h *Handlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	next := middleware.SafeNextPath(r.PostFormValue("next"))

	user, err := h.userService.Authenticate(r.Context(), username, password)
	if err != nil {
		if err == users.ErrBadCredentials {
			h.render(w, "login.html", AuthPageData{
				Viewer:   currentViewer(r),
				Errors:   map[string]string{"form": "Invalid username or password."},
				Username: username,
				Next:     next,
			})
			return
		}
		h.serverError(w, "authenticate user", err)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID, user.Username); err != nil {
		h.serverError(w, "sign in", err)
		return
	}

	http.Redirect(w, r, next, http.StatusFound)
}

// Logout handles POST /auth/logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.serverError(w, "sign out", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// SignupForm handles GET /auth/signup.
func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signup.html", AuthPageData{
		Viewer: currentViewer(r),
		Errors: make(map[string]string),
	})
}

// SignupSubmit handles POST /auth/signup. A successful registration
// signs the new user in and lands them on the global feed.
func (h *Handlers) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	renderForm := func(field, message string) {
		h.render(w, "signup.html", AuthPageData{
			Viewer:   currentViewer(r),
			Errors:   map[string]string{field: message},
			Username: username,
		})
	}

	user, err := h.userService.Register(r.Context(), users.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		switch {
		case err == users.ErrUsernameTaken:
			renderForm("username", "That username is already taken.")
		case users.IsValidationError(err):
			renderForm(validationFieldOf(err), validationMessage(err))
		default:
			h.serverError(w, "register user", err)
		}
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID, user.Username); err != nil {
		h.serverError(w, "sign in after signup", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func validationFieldOf(err error) string {
	var valErr *users.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Field
	}
	return "form"
}
