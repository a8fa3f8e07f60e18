package logout_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/features/logout"
	"github.com/coreledger/onboardweb/internal/testutil"
)

func TestHandleLogout_ClearsSession(t *testing.T) {
	sm := testutil.NewSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	req := testutil.NewRequest("POST", "/logout")
	req = testutil.SignIn(t, sm, req, testutil.CompletedUser())
	rec := testutil.NewRecorder()
	h.HandleLogout(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/")

	expired := false
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("expected the session cookie to be expired")
	}
}

func TestHandleLogout_NoSession(t *testing.T) {
	sm := testutil.NewSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	req := testutil.NewRequest("POST", "/logout")
	rec := testutil.NewRecorder()
	h.HandleLogout(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/")
}
