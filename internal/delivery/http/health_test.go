package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

type mockDatabase struct {
	err error
}

func (m *mockDatabase) Ping(context.Context) error { return m.err }

type mockKafka struct {
	enabled bool
	healthy bool
}

func (m *mockKafka) Enabled() bool { return m.enabled }
func (m *mockKafka) IsHealthy() bool { return m.healthy }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		dbErr          error
		kafka          mockKafka
		wantStatus     HealthStatus
		wantCode       int
		wantComponents int
	}{
		{
			name:           "healthy without kafka",
			kafka:          mockKafka{enabled: false},
			wantStatus:     HealthStatusHealthy,
			wantCode:       http.StatusOK,
			wantComponents: 1,
		},
		{
			name:           "healthy with kafka",
			kafka:          mockKafka{enabled: true, healthy: true},
			wantStatus:     HealthStatusHealthy,
			wantCode:       http.StatusOK,
			wantComponents: 2,
		},
		{
			name:           "kafka failing is degraded",
			kafka:          mockKafka{enabled: true, healthy: false},
			wantStatus:     HealthStatusDegraded,
			wantCode:       http.StatusOK,
			wantComponents: 2,
		},
		{
			name:           "database down is unhealthy",
			dbErr:          errors.New("connection refused"),
			kafka:          mockKafka{enabled: true, healthy: true},
			wantStatus:     HealthStatusUnhealthy,
			wantCode:       http.StatusServiceUnavailable,
			wantComponents: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kafka := tt.kafka
			handler := NewHealthHandler(&mockDatabase{err: tt.dbErr}, &kafka, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", resp.Status, tt.wantStatus)
			}
			if len(resp.Components) != tt.wantComponents {
				t.Errorf("components = %d, want %d", len(resp.Components), tt.wantComponents)
			}
		})
	}
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler(&mockDatabase{}, &mockKafka{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodGet {
		t.Errorf("Allow = %q", allow)
	}
}
