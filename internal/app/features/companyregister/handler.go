// internal/app/features/companyregister/handler.go
package companyregister

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "github.com/coreledger/onboardweb/internal/app/features/errors"
	"github.com/coreledger/onboardweb/internal/app/gateway"
	"github.com/coreledger/onboardweb/internal/app/system/auth"
	"github.com/coreledger/onboardweb/internal/app/system/htmlsanitize"
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

type companyFormData struct {
	viewdata.BaseVM
	Error       string
	CompanyName string
	Fields      *inputval.Result
}

type companyInput struct {
	CompanyName string `validate:"required,max=200" label:"Organisation Name"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /onboarding/company/register                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "company_register", companyFormData{
		BaseVM: viewdata.NewBaseVM(r, "Tell us about your company", "/"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /onboarding/company/register                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", onboarding.PathFor(onboarding.StageNeedsCompany))
		return
	}

	input := companyInput{
		CompanyName: htmlsanitize.Plain(normalize.Name(r.FormValue("company_name"))),
	}

	reRender := func(msg string, fields *inputval.Result) {
		templates.Render(w, r, "company_register", companyFormData{
			BaseVM:      viewdata.NewBaseVM(r, "Tell us about your company", "/"),
			Error:       msg,
			CompanyName: input.CompanyName,
			Fields:      fields,
		})
	}

	if result := inputval.Validate(input); result.HasErrors() {
		reRender("", result)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	companyID, err := h.API.RegisterCompany(ctx, input.CompanyName, user.ID, user.Token)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrAuth):
			h.Log.Warn("company registration auth failure", zap.String("user_id", user.ID), zap.Error(err))
			if h.SessionMgr.HandleRemoteAuthFailure(w, r) {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			reRender("Your session was rejected by the server. Please sign in again.", nil)
		case errors.Is(err, gateway.ErrNetwork):
			h.Log.Warn("company registration unreachable", zap.Error(err))
			reRender("Unable to reach the server. Please try again.", nil)
		default:
			h.Log.Info("company registration rejected", zap.String("user_id", user.ID))
			reRender("Company registration failed. Please try again.", nil)
		}
		return
	}

	// The id must be in the session before we move on; without it the
	// branch step cannot submit.
	if err := h.SessionMgr.SetCompanyID(w, r, companyID); err != nil {
		h.ErrLog.LogServerError(w, r, "save company id failed", err, "Unable to save your progress. Please try again.", onboarding.PathFor(onboarding.StageNeedsCompany))
		return
	}

	h.Log.Info("company registered",
		zap.String("user_id", user.ID),
		zap.String("company_id", companyID))

	http.Redirect(w, r, onboarding.PathFor(onboarding.StageNeedsBranch), http.StatusSeeOther)
}
