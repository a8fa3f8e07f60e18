// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/coreledger/onboardweb/internal/app/system/auth"
	"github.com/coreledger/onboardweb/internal/app/system/onboarding"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		// Sessions still mid-onboarding are sent back to their next step.
		pr.Use(onboarding.RequireStage(onboarding.StageComplete))
		pr.Get("/", h.ServeDashboard)
	})

	return r
}
