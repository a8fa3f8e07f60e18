// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/system/auth"
	"github.com/coreledger/onboardweb/internal/app/system/viewdata"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type dashboardData struct {
	viewdata.BaseVM
	FirstName string
	CompanyID string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "dashboard", dashboardData{
		BaseVM:    viewdata.NewBaseVM(r, "Dashboard", "/dashboard"),
		FirstName: user.FirstName,
		CompanyID: user.CompanyID,
	})
}
