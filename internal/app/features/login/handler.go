// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"

	uierrors "github.com/coreledger/onboardweb/internal/app/features/errors"
	"github.com/coreledger/onboardweb/internal/app/gateway"
	"github.com/coreledger/onboardweb/internal/app/system/auth"
	"github.com/coreledger/onboardweb/internal/app/system/inputval"
	"github.com/coreledger/onboardweb/internal/app/system/normalize"
	"github.com/coreledger/onboardweb/internal/app/system/onboarding"
	"github.com/coreledger/onboardweb/internal/app/system/timeouts"
	"github.com/coreledger/onboardweb/internal/app/system/viewdata"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	API        *gateway.Client
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(api *gateway.Client, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		API:        api,
		ErrLog:     errLog,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
	Fields    *inputval.Result
}

type loginInput struct {
	Email    string `validate:"required,email" label:"Email"`
	Password string `validate:"required,min=8" label:"Password"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – sign-in form                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	// Signed-in visitors go to their next onboarding step instead of
	// seeing the form again.
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, onboarding.PathFor(onboarding.StageFor(u)), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST / – authenticate                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/")
		return
	}

	input := loginInput{
		Email:    normalize.Email(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	ret := strings.TrimSpace(r.FormValue("return"))

	reRender := func(msg string, fields *inputval.Result) {
		templates.Render(w, r, "login", loginFormData{
			BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
			Error:     msg,
			Email:     input.Email,
			ReturnURL: ret,
			Fields:    fields,
		})
	}

	// Field checks run before any network call.
	if result := inputval.Validate(input); result.HasErrors() {
		reRender("", result)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.API.Login(ctx, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrNetwork):
			h.Log.Warn("login unreachable", zap.Error(err))
			reRender("Unable to reach the server. Please try again.", nil)
		default:
			h.Log.Info("login rejected", zap.String("email", input.Email))
			reRender("Login failed. Check your email and password.", nil)
		}
		return
	}

	user := auth.SessionUser{
		ID:        res.User.ID,
		FirstName: res.User.FirstName,
		LastName:  res.User.LastName,
		Email:     res.User.Email,
	}
	if err := h.SessionMgr.SetIdentity(w, r, user, res.Token); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Unable to create session. Please try again.", "/")
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", res.User.ID))

	dest := urlutil.SafeReturn(ret, "", onboarding.PathFor(onboarding.StageNeedsCompany))
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
