// internal/app/features/register/handler.go
package register

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

// genders are the accepted values for the optional gender select.
var genders = map[string]bool{"": true, "male": true, "female": true, "other": true}

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

type registerFormData struct {
	viewdata.BaseVM
	Error     string
	FirstName string
	LastName  string
	Email     string
	Gender    string
	Fields    *inputval.Result
}

type registerInput struct {
	FirstName string `validate:"required,max=100" label:"First Name"`
	LastName  string `validate:"required,max=100" label:"Last Name"`
	Email     string `validate:"required,email" label:"Email"`
	Password  string `validate:"required,min=8" label:"Password"`
	Confirm   string `validate:"required" label:"Confirm Password"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /register – signup form                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, onboarding.PathFor(onboarding.StageFor(u)), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "register", registerFormData{
		BaseVM: viewdata.NewBaseVM(r, "Create account", "/"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /register – create the account                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/register")
		return
	}

	input := registerInput{
		FirstName: htmlsanitize.Plain(normalize.Name(r.FormValue("first_name"))),
		LastName:  htmlsanitize.Plain(normalize.Name(r.FormValue("last_name"))),
		Email:     normalize.Email(r.FormValue("email")),
		Password:  r.FormValue("password"),
		Confirm:   r.FormValue("password_confirmation"),
	}
	gender := normalize.Code(r.FormValue("gender"))
	if !genders[gender] {
		gender = ""
	}

	reRender := func(msg string, fields *inputval.Result) {
		templates.Render(w, r, "register", registerFormData{
			BaseVM:    viewdata.NewBaseVM(r, "Create account", "/"),
			Error:     msg,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Gender:    gender,
			Fields:    fields,
		})
	}

	result := inputval.Validate(input)
	if input.Confirm != "" && input.Password != input.Confirm {
		result.Errors = append(result.Errors, inputval.FieldError{
			Field:   "Confirm",
			Message: "Passwords do not match.",
		})
	}
	if result.HasErrors() {
		reRender("", result)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.API.RegisterUser(ctx, gateway.RegistrationForm{
		FirstName:            input.FirstName,
		LastName:             input.LastName,
		Email:                input.Email,
		Gender:               gender,
		Password:             input.Password,
		PasswordConfirmation: input.Confirm,
	})
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrNetwork):
			h.Log.Warn("signup unreachable", zap.Error(err))
			reRender("Unable to reach the server. Please try again.", nil)
		default:
			h.Log.Info("signup rejected", zap.String("email", input.Email))
			reRender("Registration failed. The email address may already be in use.", nil)
		}
		return
	}

	// A successful signup signs the new user in.
	user := auth.SessionUser{
		ID:        res.User.ID,
		FirstName: res.User.FirstName,
		LastName:  res.User.LastName,
		Email:     res.User.Email,
	}
	if err := h.SessionMgr.SetIdentity(w, r, user, res.Token); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Unable to create session. Please sign in.", "/")
		return
	}

	h.Log.Info("user registered", zap.String("user_id", res.User.ID))

	http.Redirect(w, r, onboarding.PathFor(onboarding.StageNeedsCompany), http.StatusSeeOther)
}
