// Package http contains HTTP handlers of the service
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DatabaseHealthChecker checks database connectivity
type DatabaseHealthChecker interface {
	Ping(ctx context.Context) error
}

// KafkaHealthChecker reports the state of the event producer
type KafkaHealthChecker interface {
	Enabled() bool
	IsHealthy() bool
}

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name     string `json:"name"`
	Healthy  bool   `json:"healthy"`
	Critical bool   `json:"critical"`
	Message  string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	database DatabaseHealthChecker
	kafka    KafkaHealthChecker
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(database DatabaseHealthChecker, kafka KafkaHealthChecker, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		database: database,
		kafka:    kafka,
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

// ServeHTTP implements http.Handler interface
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	components := h.checkComponents(ctx)
	status := determineOverallStatus(components)

	statusCode := http.StatusOK
	if status == HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	logEvent := h.logger.Debug()
	if status != HealthStatusHealthy {
		logEvent = h.logger.Warn()
	}
	logEvent.
		Str("status", string(status)).
		Int("status_code", statusCode).
		Interface("components", components).
		Msg("Health check completed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Headers are already sent, so an encoding error can only be logged
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode health check response")
	}
}

func (h *HealthHandler) checkComponents(ctx context.Context) []ComponentHealth {
	components := make([]ComponentHealth, 0, 2)

	database := ComponentHealth{Name: "database", Healthy: true, Critical: true}
	if err := h.database.Ping(ctx); err != nil {
		database.Healthy = false
		database.Message = err.Error()
	}
	components = append(components, database)

	if h.kafka.Enabled() {
		kafka := ComponentHealth{Name: "kafka_producer", Healthy: h.kafka.IsHealthy()}
		if !kafka.Healthy {
			kafka.Message = "last event publish failed"
		}
		components = append(components, kafka)
	}

	return components
}

// determineOverallStatus is unhealthy when a critical component is down
// and degraded when any other component is.
func determineOverallStatus(components []ComponentHealth) HealthStatus {
	status := HealthStatusHealthy
	for _, component := range components {
		if component.Healthy {
			continue
		}
		if component.Critical {
			return HealthStatusUnhealthy
		}
		status = HealthStatusDegraded
	}
	return status
}
