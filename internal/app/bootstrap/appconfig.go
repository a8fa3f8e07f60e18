// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request body size limits.
// AppConfig is where everything specific to this application lives.
type AppConfig struct {
	// ERP API configuration
	APIBaseURL string        // Base URL of the ERP API (e.g., http://localhost:3000)
	APITimeout time.Duration // Hard ceiling on a single API request

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: onboardweb-session)
	SessionDomain string // Cookie domain (blank means current host)

	// AuthFailurePolicy decides what happens to the local session when
	// the ERP API rejects the stored token: "keep" or "logout".
	AuthFailurePolicy string

	// CSRFKey is the 32-byte secret for the CSRF token middleware.
	CSRFKey string

	// SiteName is the display name used in page titles.
	SiteName string
}
