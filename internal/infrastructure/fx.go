// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Conte777/MinaAlerts/internal/infrastructure/database"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/http"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/kafka"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/logger"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/metrics"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	database.Module,
	kafka.Module,
	metrics.Module,
	http.Module,
	telegram.Module,
)
