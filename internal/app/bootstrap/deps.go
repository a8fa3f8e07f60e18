// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/gateway"
)

// Deps holds back-end dependencies for the app. This front end keeps no
// database of its own; the ERP API is the only backend it talks to.
type Deps struct {
	API *gateway.Client
}

// ConnectBackends builds the ERP API client. It fills the slot a
// database connection would occupy in a data-owning service.
func ConnectBackends(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	client := gateway.NewClient(appCfg.APIBaseURL, appCfg.APITimeout, logger)
	logger.Info("erp api client configured", zap.String("base_url", client.BaseURL()))
	return Deps{API: client}, nil
}
