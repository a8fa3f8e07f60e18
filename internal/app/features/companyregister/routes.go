// internal/app/features/companyregister/routes.go
package companyregister

import (
	"github.com/go-chi/chi/v5"

	"github.com/coreledger/onboardweb/internal/app/system/auth"
	"github.com/coreledger/onboardweb/internal/app/system/onboarding"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		// A session that already holds a company id moves forward to
		// the branch step.
		pr.Use(onboarding.RedirectCompleted(onboarding.StageNeedsCompany))
		pr.Get("/", h.ServeForm)
		pr.Post("/", h.HandleSubmit)
	})

	return r
}
