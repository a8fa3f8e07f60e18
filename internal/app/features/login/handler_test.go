package login_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/coreledger/onboardweb/internal/app/features/errors"
	"github.com/coreledger/onboardweb/internal/app/features/login"
	_ "github.com/coreledger/onboardweb/internal/app/features/login/views"
	"github.com/coreledger/onboardweb/internal/testutil"
)

func newTestHandler(t *testing.T, api *testutil.StubAPI) *login.Handler {
	t.Helper()
	testutil.BootTemplates(t)
	logger := zap.NewNop()
	return login.NewHandler(api.Client(), testutil.NewSessionManager(t), uierrors.NewErrorLogger(logger), logger)
}

func TestServeLogin_ShowsForm(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubAPI(t))

	req := testutil.NewRequest("GET", "/")
	rec := testutil.NewRecorder()
	h.ServeLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Sign in")
	rec.AssertContains(t, `name="email"`)
	// The submit button locks once a request is in flight.
	rec.AssertContains(t, "b.disabled=true")
}

func TestServeLogin_AuthenticatedRedirectsToNextStep(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubAPI(t))

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.FreshUser())
	rec := testutil.NewRecorder()
	h.ServeLogin(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/onboarding/company/register")
}

func TestServeLogin_CompletedUserRedirectsToDashboard(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubAPI(t))

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.CompletedUser())
	rec := testutil.NewRecorder()
	h.ServeLogin(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/dashboard")
}

func TestHandleLoginPost_Success(t *testing.T) {
	api := testutil.NewStubAPI(t)
	h := newTestHandler(t, api)

	req := testutil.NewFormRequest("/", map[string]string{
		"email":    "a@b.com",
		"password": "longenough1",
	})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/onboarding/company/register")

	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on successful login")
	}
}

func TestHandleLoginPost_ShortPasswordNeverCallsAPI(t *testing.T) {
	api := testutil.NewStubAPI(t)
	api.FailLogin = true // would fail loudly if the request went out
	h := newTestHandler(t, api)

	req := testutil.NewFormRequest("/", map[string]string{
		"email":    "a@b.com",
		"password": "short",
	})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Password must be at least 8 characters.")
}

func TestHandleLoginPost_InvalidEmailRejectedLocally(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubAPI(t))

	req := testutil.NewFormRequest("/", map[string]string{
		"email":    "not-an-email",
		"password": "longenough1",
	})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "A valid email address is required.")
}

func TestHandleLoginPost_RejectedShowsBanner(t *testing.T) {
	api := testutil.NewStubAPI(t)
	api.FailLogin = true
	h := newTestHandler(t, api)

	req := testutil.NewFormRequest("/", map[string]string{
		"email":    "a@b.com",
		"password": "longenough1",
	})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Login failed")

	if len(rec.Result().Cookies()) != 0 {
		t.Error("rejected login must not set a session cookie")
	}
}

func TestHandleLoginPost_APIDownShowsBanner(t *testing.T) {
	api := testutil.NewStubAPI(t)
	h := newTestHandler(t, api)
	api.Server.Close()

	req := testutil.NewFormRequest("/", map[string]string{
		"email":    "a@b.com",
		"password": "longenough1",
	})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Unable to reach the server")
}

func TestHandleLoginPost_ReturnURLHonored(t *testing.T) {
	api := testutil.NewStubAPI(t)
	h := newTestHandler(t, api)

	req := testutil.NewFormRequest("/", map[string]string{
		"email":    "a@b.com",
		"password": "longenough1",
		"return":   "/dashboard",
	})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/dashboard")
}
