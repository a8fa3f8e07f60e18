// Package onboarding derives the multi-step setup state from the session
// and decides which screen a session may reach.
//
// The flow is linear: a new account registers an organization, then its
// first branch/location, then lands on the dashboard. Progress is not a
// separately stored value; it is a function of what the session holds.
package onboarding

import (
	"net/http"

	"github.com/coreledger/onboardweb/internal/app/system/auth"
)

// Stage is the session's position in the onboarding flow.
type Stage int

const (
	// StageUnauthenticated: no identity/token in the session.
	StageUnauthenticated Stage = iota
	// StageNeedsCompany: authenticated, no organization registered yet.
	StageNeedsCompany
	// StageNeedsBranch: organization registered, first branch still missing.
	StageNeedsBranch
	// StageComplete: branch registration succeeded this session.
	StageComplete
)

// String returns the stage name for logs.
func (s Stage) String() string {
	switch s {
	case StageNeedsCompany:
		return "needs-company"
	case StageNeedsBranch:
		return "needs-branch"
	case StageComplete:
		return "complete"
	default:
		return "unauthenticated"
	}
}

// StageFor derives the onboarding stage from the session user. A nil
// user, or one with a missing token, is unauthenticated.
func StageFor(u *auth.SessionUser) Stage {
	switch {
	case u == nil || u.ID == "" || u.Token == "":
		return StageUnauthenticated
	case u.CompanyID == "":
		return StageNeedsCompany
	case !u.BranchDone:
		return StageNeedsBranch
	default:
		return StageComplete
	}
}

// PathFor maps a stage to the screen that serves it.
func PathFor(s Stage) string {
	switch s {
	case StageNeedsCompany:
		return "/onboarding/company/register"
	case StageNeedsBranch:
		return "/onboarding/branch/register"
	case StageComplete:
		return "/dashboard"
	default:
		return "/"
	}
}

// RedirectCompleted sends sessions that have already passed the given
// stage forward to their current screen, so re-entering a satisfied
// onboarding step moves the user on instead of repeating it.
// Unauthenticated sessions are left for RequireSignedIn to handle.
func RedirectCompleted(stage Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := auth.CurrentUser(r)
			current := StageFor(u)
			if current > stage && current != StageUnauthenticated {
				http.Redirect(w, r, PathFor(current), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStage gates a screen to sessions that have reached at least the
// given stage; earlier sessions are redirected back to wherever they
// actually are (e.g. branch registration without a captured company id
// goes back to company registration).
func RequireStage(stage Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := auth.CurrentUser(r)
			if current := StageFor(u); current < stage {
				http.Redirect(w, r, PathFor(current), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
