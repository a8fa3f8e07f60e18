// internal/app/features/branchregister/handler.go
package branchregister

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

type branchFormData struct {
	viewdata.BaseVM
	Error  string
	Form   branchInput
	Fields *inputval.Result

	Industries []Option
	States     []Option
	TimeZones  []Option
	Currencies []Option
	Languages  []Option
}

// branchInput carries every field of the branch form. The two VAT
// fields are validated by hand because they are required only when the
// VAT checkbox is on.
type branchInput struct {
	Name            string `validate:"required,max=200" label:"Branch Name"`
	Industry        string `validate:"required" label:"Industry"`
	State           string `validate:"required" label:"State"`
	BuildingNumber  string `validate:"required,max=50" label:"Building Number"`
	Street          string `validate:"required,max=200" label:"Street"`
	City            string `validate:"required,max=100" label:"City"`
	District        string `validate:"required,max=100" label:"District"`
	ZipCode         string `validate:"required,max=20" label:"Zip Code"`
	Currency        string `validate:"required" label:"Currency"`
	Language        string `validate:"required" label:"Language"`
	TimeZone        string `validate:"required" label:"Time Zone"`
	IsVATRegistered bool
	VATNumber       string
	TaxNumber       string
}

func (h *Handler) formData(r *http.Request, msg string, form branchInput, fields *inputval.Result) branchFormData {
	return branchFormData{
		BaseVM:     viewdata.NewBaseVM(r, "Register your first branch", onboarding.PathFor(onboarding.StageNeedsCompany)),
		Error:      msg,
		Form:       form,
		Fields:     fields,
		Industries: industryOptions,
		States:     stateOptions,
		TimeZones:  timeZoneOptions,
		Currencies: currencyOptions,
		Languages:  languageOptions,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /onboarding/branch/register                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "branch_register", h.formData(r, "", branchInput{}, nil))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /onboarding/branch/register                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", onboarding.PathFor(onboarding.StageNeedsBranch))
		return
	}

	input := branchInput{
		Name:            htmlsanitize.Plain(normalize.Name(r.FormValue("name"))),
		Industry:        normalize.Code(r.FormValue("industry")),
		State:           normalize.Code(r.FormValue("state")),
		BuildingNumber:  htmlsanitize.Plain(normalize.Name(r.FormValue("building_number"))),
		Street:          htmlsanitize.Plain(normalize.Name(r.FormValue("street"))),
		City:            htmlsanitize.Plain(normalize.Name(r.FormValue("city"))),
		District:        htmlsanitize.Plain(normalize.Name(r.FormValue("district"))),
		ZipCode:         htmlsanitize.Plain(normalize.Name(r.FormValue("zip_code"))),
		Currency:        normalize.Code(r.FormValue("currency")),
		Language:        normalize.Code(r.FormValue("language")),
		TimeZone:        normalize.Code(r.FormValue("time_zone")),
		IsVATRegistered: r.FormValue("is_vat_registered") != "",
		VATNumber:       htmlsanitize.Plain(normalize.Name(r.FormValue("vat_registered_number"))),
		TaxNumber:       htmlsanitize.Plain(normalize.Name(r.FormValue("tax_registration_number"))),
	}

	// The VAT fields only exist when the checkbox is on; off means any
	// lingering values are discarded, not submitted.
	if !input.IsVATRegistered {
		input.VATNumber = ""
		input.TaxNumber = ""
	}

	reRender := func(msg string, fields *inputval.Result) {
		templates.Render(w, r, "branch_register", h.formData(r, msg, input, fields))
	}

	result := inputval.Validate(input)
	checkOption := func(field, value string, valid map[string]bool, label string) {
		if value != "" && !valid[value] {
			result.Errors = append(result.Errors, inputval.FieldError{Field: field, Message: label + " has an unknown value."})
		}
	}
	checkOption("Industry", input.Industry, validIndustries, "Industry")
	checkOption("State", input.State, validStates, "State")
	checkOption("Currency", input.Currency, validCurrencies, "Currency")
	checkOption("Language", input.Language, validLanguages, "Language")
	checkOption("TimeZone", input.TimeZone, validTimeZones, "Time Zone")
	if input.IsVATRegistered {
		if input.VATNumber == "" {
			result.Errors = append(result.Errors, inputval.FieldError{Field: "VATNumber", Message: "VAT Number is required."})
		}
		if input.TaxNumber == "" {
			result.Errors = append(result.Errors, inputval.FieldError{Field: "TaxNumber", Message: "Tax Registration Number is required."})
		}
	}
	if result.HasErrors() {
		reRender("", result)
		return
	}

	if user.CompanyID == "" {
		// No organization id means the previous step never finished on
		// this session. Send the user back there rather than submit a
		// branch the server cannot attach.
		h.Log.Warn("branch submit without company id", zap.String("user_id", user.ID))
		http.Redirect(w, r, onboarding.PathFor(onboarding.StageNeedsCompany), http.StatusSeeOther)
		return
	}

	branch := gateway.BranchRegistration{
		CompanyID:             user.CompanyID,
		Name:                  input.Name,
		Industry:              input.Industry,
		State:                 input.State,
		BuildingNumber:        input.BuildingNumber,
		Street:                input.Street,
		ZipCode:               input.ZipCode,
		District:              input.District,
		City:                  input.City,
		Currency:              input.Currency,
		Language:              input.Language,
		TimeZone:              input.TimeZone,
		IsVATRegistered:       input.IsVATRegistered,
		TaxRegistrationNumber: input.TaxNumber,
		VATRegisteredNumber:   input.VATNumber,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.API.RegisterBranch(ctx, branch, user.Token); err != nil {
		switch {
		case errors.Is(err, gateway.ErrAuth):
			h.Log.Warn("branch registration auth failure", zap.String("user_id", user.ID), zap.Error(err))
			if h.SessionMgr.HandleRemoteAuthFailure(w, r) {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			reRender("Your session was rejected by the server. Please sign in again.", nil)
		case errors.Is(err, gateway.ErrNetwork):
			h.Log.Warn("branch registration unreachable", zap.Error(err))
			reRender("Unable to reach the server. Please try again.", nil)
		default:
			h.Log.Info("branch registration rejected",
				zap.String("user_id", user.ID),
				zap.String("company_id", user.CompanyID))
			reRender("Branch registration failed. Please check the details and try again.", nil)
		}
		return
	}

	if err := h.SessionMgr.MarkBranchRegistered(w, r); err != nil {
		h.ErrLog.LogServerError(w, r, "mark branch registered failed", err, "Unable to save your progress. Please try again.", onboarding.PathFor(onboarding.StageNeedsBranch))
		return
	}

	h.Log.Info("branch registered",
		zap.String("user_id", user.ID),
		zap.String("company_id", user.CompanyID),
		zap.String("branch", input.Name))

	http.Redirect(w, r, onboarding.PathFor(onboarding.StageComplete), http.StatusSeeOther)
}
