// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	branchregisterfeature "github.com/coreledger/onboardweb/internal/app/features/branchregister"
	_ "github.com/coreledger/onboardweb/internal/app/features/branchregister/views"
	companyregisterfeature "github.com/coreledger/onboardweb/internal/app/features/companyregister"
	_ "github.com/coreledger/onboardweb/internal/app/features/companyregister/views"
	dashboardfeature "github.com/coreledger/onboardweb/internal/app/features/dashboard"
	_ "github.com/coreledger/onboardweb/internal/app/features/dashboard/views"
	errorsfeature "github.com/coreledger/onboardweb/internal/app/features/errors"
	healthfeature "github.com/coreledger/onboardweb/internal/app/features/health"
	loginfeature "github.com/coreledger/onboardweb/internal/app/features/login"
	_ "github.com/coreledger/onboardweb/internal/app/features/login/views"
	logoutfeature "github.com/coreledger/onboardweb/internal/app/features/logout"
	registerfeature "github.com/coreledger/onboardweb/internal/app/features/register"
	_ "github.com/coreledger/onboardweb/internal/app/features/register/views"
	"github.com/coreledger/onboardweb/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connections, and any
// Startup hooks have completed. It initializes the template engine,
// applies session and CSRF middleware, and mounts the feature routers
// for the onboarding flow: login, register, company registration,
// branch registration, and the dashboard.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"

	policy := auth.ParsePolicy(appCfg.AuthFailurePolicy)
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, policy, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Every form post carries a CSRF token; the middleware rejects
	// posts without one.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Registered before the mounts so sub-routers inherit it.
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, sessionMgr, errLog, logger)
	r.Mount("/", loginfeature.Routes(loginHandler))

	registerHandler := registerfeature.NewHandler(deps.API, sessionMgr, errLog, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Onboarding steps
	companyHandler := companyregisterfeature.NewHandler(deps.API, sessionMgr, errLog, logger)
	r.Mount("/onboarding/company/register", companyregisterfeature.Routes(companyHandler, sessionMgr))

	branchHandler := branchregisterfeature.NewHandler(deps.API, sessionMgr, errLog, logger)
	r.Mount("/onboarding/branch/register", branchregisterfeature.Routes(branchHandler, sessionMgr))

	// Destination once onboarding is complete
	dashboardHandler := dashboardfeature.NewHandler(logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	return r, nil
}
