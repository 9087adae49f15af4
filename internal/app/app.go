// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/MinaAlerts/config"
	httpDelivery "github.com/Conte777/MinaAlerts/internal/delivery/http"
	"github.com/Conte777/MinaAlerts/internal/domain"
	"github.com/Conte777/MinaAlerts/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, database, kafka, metrics, http, telegram)
		infrastructure.Module,

		// Domain (subscription management)
		domain.Module,

		// Health endpoint
		httpDelivery.Module,
	)
}
