package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/system/auth"
)

// NewSessionManager builds a session manager suitable for handler
// tests: fixed key, insecure cookies, keep-session policy.
func NewSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		false,
		auth.PolicyKeep,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return sm
}

// SignIn gives req both the context user and a real session cookie
// for the same user, so handlers that re-read the session to mutate
// it see an authenticated state.
func SignIn(t *testing.T, sm *auth.SessionManager, req *http.Request, user TestUser) *http.Request {
	t.Helper()

	seed := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	su := auth.SessionUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	if err := sm.SetIdentity(rec, seed, su, user.Token); err != nil {
		t.Fatalf("SetIdentity() error = %v", err)
	}
	if user.CompanyID != "" {
		if err := sm.SetCompanyID(rec, seed, user.CompanyID); err != nil {
			t.Fatalf("SetCompanyID() error = %v", err)
		}
	}
	if user.BranchDone {
		if err := sm.MarkBranchRegistered(rec, seed); err != nil {
			t.Fatalf("MarkBranchRegistered() error = %v", err)
		}
	}

	// Each Save appends a Set-Cookie header; only the last value per
	// cookie name is current.
	latest := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		latest[c.Name] = c
	}
	for _, c := range latest {
		req.AddCookie(c)
	}
	return WithUser(req, user)
}
