// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/system/auth"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, SessionMgr: sessionMgr}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /logout                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("user_id", user.ID))
	}

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Warn("session clear failed", zap.Error(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
