package register_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/coreledger/onboardweb/internal/app/features/errors"
	"github.com/coreledger/onboardweb/internal/app/features/register"
	_ "github.com/coreledger/onboardweb/internal/app/features/register/views"
	"github.com/coreledger/onboardweb/internal/testutil"
)

func newTestHandler(t *testing.T, api *testutil.StubAPI) *register.Handler {
	t.Helper()
	testutil.BootTemplates(t)
	logger := zap.NewNop()
	return register.NewHandler(api.Client(), testutil.NewSessionManager(t), uierrors.NewErrorLogger(logger), logger)
}

func validForm() map[string]string {
	return map[string]string{
		"first_name":            "Ada",
		"last_name":             "Byron",
		"email":                 "a@b.com",
		"gender":                "female",
		"password":              "longenough1",
		"password_confirmation": "longenough1",
	}
}

func TestServeRegister_ShowsForm(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubAPI(t))

	req := testutil.NewRequest("GET", "/register")
	rec := testutil.NewRecorder()
	h.ServeRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `name="password_confirmation"`)
	rec.AssertContains(t, "b.disabled=true")
}

func TestServeRegister_AuthenticatedRedirectsForward(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubAPI(t))

	req := testutil.NewAuthenticatedRequest("GET", "/register", testutil.CompanyUser())
	rec := testutil.NewRecorder()
	h.ServeRegister(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/onboarding/branch/register")
}

func TestHandleRegisterPost_Success(t *testing.T) {
	api := testutil.NewStubAPI(t)
	h := newTestHandler(t, api)

	req := testutil.NewFormRequest("/register", validForm())
	rec := testutil.NewRecorder()
	h.HandleRegisterPost(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/onboarding/company/register")

	if len(rec.Result().Cookies()) == 0 {
		t.Error("successful signup should sign the user in")
	}
}

func TestHandleRegisterPost_PasswordMismatch(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubAPI(t))

	form := validForm()
	form["password_confirmation"] = "different1"
	req := testutil.NewFormRequest("/register", form)
	rec := testutil.NewRecorder()
	h.HandleRegisterPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Passwords do not match.")
}

func TestHandleRegisterPost_ShortPasswordNeverCallsAPI(t *testing.T) {
	api := testutil.NewStubAPI(t)
	api.FailRegister = true
	h := newTestHandler(t, api)

	form := validForm()
	form["password"] = "short"
	form["password_confirmation"] = "short"
	req := testutil.NewFormRequest("/register", form)
	rec := testutil.NewRecorder()
	h.HandleRegisterPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Password must be at least 8 characters.")
}

func TestHandleRegisterPost_MissingFirstName(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubAPI(t))

	form := validForm()
	form["first_name"] = "  "
	req := testutil.NewFormRequest("/register", form)
	rec := testutil.NewRecorder()
	h.HandleRegisterPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "First Name is required.")
}

func TestHandleRegisterPost_Rejected(t *testing.T) {
	api := testutil.NewStubAPI(t)
	api.FailRegister = true
	h := newTestHandler(t, api)

	req := testutil.NewFormRequest("/register", validForm())
	rec := testutil.NewRecorder()
	h.HandleRegisterPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Registration failed")
}

func TestHandleRegisterPost_UnknownGenderDropped(t *testing.T) {
	api := testutil.NewStubAPI(t)
	h := newTestHandler(t, api)

	form := validForm()
	form["gender"] = "unlisted"
	req := testutil.NewFormRequest("/register", form)
	rec := testutil.NewRecorder()
	h.HandleRegisterPost(rec.ResponseRecorder, req)

	// Unknown select values are dropped rather than rejected.
	rec.AssertRedirect(t, "/onboarding/company/register")
}
