package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/sessions"
)

// Context keys for storing the signed-in user
type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
)

const (
	// SessionName is the cookie name for the Quill session
	SessionName = "quill_session"

	// MinSessionSecretLength is the minimum byte length for the cookie
	// signing secret
	MinSessionSecretLength = 32

	// LoginPath is where unauthenticated requests to protected routes
	// are redirected, carrying the original URL in ?next=
	LoginPath = "/auth/login"
)

// SessionManager wraps the cookie store and provides the auth
// middleware for the web routes. Sessions carry only the user id and
// username; everything else is looked up per request.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a session manager backed by a signed cookie
// store. The secret must be long enough to make the HMAC meaningful.
func NewSessionManager(secret string) (*SessionManager, error) {
	if len(secret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSessionSecretLength)
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 14, // two weeks
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store}, nil
}

// CurrentUser loads the signed-in user (if any) from the session cookie
// into the request context. Anonymous requests pass through untouched;
// every route can run under this middleware.
func (m *SessionManager) CurrentUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			// Tampered or stale cookie: treat as anonymous
			slog.Debug("invalid session cookie", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values["user_id"].(int64)
		if !ok || userID == 0 {
			next.ServeHTTP(w, r)
			return
		}
		username, _ := session.Values["username"].(string)

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, UsernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth ensures the request carries a signed-in user. Anonymous
// requests are redirected to the login page with a resumption target,
// not failed with an error status.
func (m *SessionManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r) == 0 {
			target := LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn stores the user in the session cookie
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID int64, username string) error {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		// Get returns a usable new session alongside decode errors;
		// overwrite whatever was there.
		session, err = m.store.New(r, SessionName)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
	}

	session.Values["user_id"] = userID
	session.Values["username"] = username
	return session.Save(r, w)
}

// SignOut clears the session cookie
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return nil // nothing valid to clear
	}

	session.Options.MaxAge = -1
	delete(session.Values, "user_id")
	delete(session.Values, "username")
	return session.Save(r, w)
}

// GetUserID extracts the signed-in user's id from the request context.
// Returns 0 if the request is anonymous.
func GetUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(UserIDKey).(int64)
	return id
}

// GetUsername extracts the signed-in user's username from the request
// context. Returns "" if the request is anonymous.
func GetUsername(r *http.Request) string {
	name, _ := r.Context().Value(UsernameKey).(string)
	return name
}

// GetAuthenticatedUserID extracts the signed-in user's id from a bare
// context. Used by service layers for defense-in-depth validation.
// Returns 0 if not authenticated.
func GetAuthenticatedUserID(ctx context.Context) int64 {
	id, _ := ctx.Value(UserIDKey).(int64)
	return id
}

// SetTestUser sets the signed-in user in the context for testing
// purposes. This should ONLY be used in tests to mock authenticated
// requests.
func SetTestUser(ctx context.Context, userID int64, username string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UsernameKey, username)
}

// SafeNextPath validates a post-login resumption target. Only same-site
// absolute paths are honored; anything else falls back to "/" so the
// login flow can't be used as an open redirect.
func SafeNextPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
