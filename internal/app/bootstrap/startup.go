// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/system/timeouts"
	"github.com/coreledger/onboardweb/internal/app/system/viewdata"
)

// Startup runs one-time application initialization after backends are
// connected, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	viewdata.Init(appCfg.SiteName)

	// The configured ceiling bounds the largest exchange; the shorter
	// tiers derive their defaults.
	timeouts.Configure(timeouts.Config{Medium: appCfg.APITimeout})

	return nil
}
