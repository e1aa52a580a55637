// internal/app/system/auth/auth_test.go
package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arenaops/venuehub/internal/app/system/auth"
	"go.uber.org/zap"
)

func initStore(t *testing.T) {
	t.Helper()
	if err := auth.InitSessionStore("test-session-key-0123456789abcdef", "", "", false, zap.NewNop()); err != nil {
		t.Fatalf("session store init failed: %v", err)
	}
}

func TestRequireSignedIn(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	protected := auth.RequireSignedIn(next)

	// Anonymous request is rejected before the handler runs.
	req := httptest.NewRequest(http.MethodPost, "/api/assignments", nil)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want 401", rec.Code)
	}
	if called {
		t.Error("handler ran for an anonymous request")
	}

	// A user in context passes through.
	req = auth.WithTestUser(httptest.NewRequest(http.MethodPost, "/api/assignments", nil),
		&auth.SessionUser{ID: "abc", Name: "Test", Email: "t@test.com"})
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Errorf("signed in: got %d, handler called %v", rec.Code, called)
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	initStore(t)

	user := &auth.SessionUser{
		ID:    "656e6f7567682062797465732e21",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}

	// Sign in and capture the cookie.
	signInRec := httptest.NewRecorder()
	signInReq := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	if err := auth.SignIn(signInRec, signInReq, user); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := signInRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie set")
	}

	// Replay the cookie through the middleware.
	var got *auth.SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	auth.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("no user loaded from session")
	}
	if got.ID != user.ID || got.Email != user.Email {
		t.Errorf("loaded user: got %+v, want %+v", got, user)
	}
}

func TestSignOutClearsSession(t *testing.T) {
	initStore(t)

	user := &auth.SessionUser{ID: "abc", Name: "Test", Email: "t@test.com"}
	signInRec := httptest.NewRecorder()
	if err := auth.SignIn(signInRec, httptest.NewRequest(http.MethodPost, "/", nil), user); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	// Sign out with the session cookie attached.
	outReq := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	for _, c := range signInRec.Result().Cookies() {
		outReq.AddCookie(c)
	}
	outRec := httptest.NewRecorder()
	if err := auth.SignOut(outRec, outReq); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	// The cleared cookie no longer authenticates.
	var got *auth.SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range outRec.Result().Cookies() {
		req.AddCookie(c)
	}
	auth.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req)
	if got != nil {
		t.Errorf("user still loaded after sign-out: %+v", got)
	}
}
