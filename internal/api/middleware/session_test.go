package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testSecret)
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return sm
}

func TestNewSessionManagerRejectsShortSecret(t *testing.T) {
	if _, err := NewSessionManager("short"); err == nil {
		t.Error("NewSessionManager() accepted a short secret")
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler ran for anonymous request")
	}))

	r := httptest.NewRequest(http.MethodGet, "/new?draft=1", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, LoginPath+"?next=") {
		t.Errorf("Location = %q, want login redirect with next param", location)
	}
	if !strings.Contains(location, "%2Fnew%3Fdraft%3D1") {
		t.Errorf("Location = %q, next param does not carry the original URL", location)
	}
}

func TestSignInRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	// Sign in and capture the cookie
	signInRec := httptest.NewRecorder()
	signInReq := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	if err := sm.SignIn(signInRec, signInReq, 42, "alice"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	cookies := signInRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn() set no cookie")
	}

	// Replay the cookie through CurrentUser + RequireAuth
	var gotID int64
	var gotName string
	handler := sm.CurrentUser(sm.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r)
		gotName = GetUsername(r)
	})))

	r := httptest.NewRequest(http.MethodGet, "/new", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotID != 42 || gotName != "alice" {
		t.Errorf("got user (%d, %q), want (42, %q)", gotID, gotName, "alice")
	}
}

func TestCurrentUserIgnoresTamperedCookie(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.CurrentUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r) != 0 {
			t.Error("tampered cookie produced a signed-in user")
		}
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestSignOutClearsSession(t *testing.T) {
	sm := newTestSessionManager(t)

	signInRec := httptest.NewRecorder()
	signInReq := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	if err := sm.SignIn(signInRec, signInReq, 42, "alice"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	signOutReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	for _, c := range signInRec.Result().Cookies() {
		signOutReq.AddCookie(c)
	}
	signOutRec := httptest.NewRecorder()
	if err := sm.SignOut(signOutRec, signOutReq); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}

	found := false
	for _, c := range signOutRec.Result().Cookies() {
		if c.Name == SessionName && c.MaxAge < 0 {
			found = true
		}
	}
	if !found {
		t.Error("SignOut() did not expire the session cookie")
	}
}

func TestSafeNextPath(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{name: "empty", next: "", want: "/"},
		{name: "same-site path", next: "/new", want: "/new"},
		{name: "path with query", next: "/group/go?page=2", want: "/group/go?page=2"},
		{name: "absolute url", next: "https://evil.example/", want: "/"},
		{name: "protocol-relative", next: "//evil.example/", want: "/"},
		{name: "relative", next: "new", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeNextPath(tt.next); got != tt.want {
				t.Errorf("SafeNextPath(%q) = %q, want %q", tt.next, got, tt.want)
			}
		})
	}
}
