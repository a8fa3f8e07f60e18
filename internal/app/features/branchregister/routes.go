// internal/app/features/branchregister/routes.go
package branchregister

import (
	"github.com/go-chi/chi/v5"

	"github.com/coreledger/onboardweb/internal/app/system/auth"
	"github.com/coreledger/onboardweb/internal/app/system/onboarding"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		// Branch registration needs a company id in the session; a
		// session without one goes back to the company step.
		pr.Use(onboarding.RequireStage(onboarding.StageNeedsBranch))
		// A session that already finished the branch moves forward to
		// the dashboard.
		pr.Use(onboarding.RedirectCompleted(onboarding.StageNeedsBranch))
		pr.Get("/", h.ServeForm)
		pr.Post("/", h.HandleSubmit)
	})

	return r
}
