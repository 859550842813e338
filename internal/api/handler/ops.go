package handler

import (
	"net/http"
	"time"

	"github.com/sejalthool/AQI/internal/api/models"
	"github.com/sejalthool/AQI/internal/api/response"
	"github.com/sejalthool/AQI/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	startedAt time.Time
	air       AirService
	providers *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, air AirService, providers *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		startedAt: time.Now(),
		air:       air,
		providers: providers,
	}
}

// HealthCheck handles GET /healthz - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /readyz - readiness check. The service is ready
// once the air quality service and the provider registry are wired.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.air == nil || h.providers == nil {
		response.ServiceUnavailable(w, r, "service dependencies not ready")
		return
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - uptime, cache occupancy, and
// per-provider circuit health.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	overall := models.HealthStatusOK

	providers := make([]models.ProviderStatus, 0)
	if h.providers != nil {
		for _, ph := range h.providers.GetAllHealth() {
			providers = append(providers, toProviderStatus(ph))

			switch {
			case ph.IsUnhealthy():
				overall = models.HealthStatusFail
			case ph.IsDegraded() && overall == models.HealthStatusOK:
				overall = models.HealthStatusDegraded
			}
		}
	}

	var cache models.CacheStatus
	if h.air != nil {
		cache = models.CacheStatus{FeedItems: h.air.CacheStats().FeedItems}
	}

	status := models.SystemStatus{
		Status:        overall,
		Time:          models.Timestamp(now),
		Version:       h.version,
		UptimeSeconds: int64(now.Sub(h.startedAt).Seconds()),
		Cache:         cache,
		Providers:     providers,
	}
	response.JSON(w, r, http.StatusOK, status)
}

func toProviderStatus(ph *resilience.ProviderHealth) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider:     ph.Name,
		Status:       providerHealthStatus(ph),
		CircuitState: ph.CircuitState.String(),
	}
	if ph.LastSuccessAt != nil {
		ts := models.Timestamp(*ph.LastSuccessAt)
		ps.LastSuccessAt = &ts
	}
	if ph.LastFailureAt != nil {
		ts := models.Timestamp(*ph.LastFailureAt)
		ps.LastFailureAt = &ts
	}
	if ph.LastError != "" {
		msg := ph.LastError
		ps.Message = &msg
	}
	return ps
}

// providerHealthStatus maps circuit state to a health label.
func providerHealthStatus(ph *resilience.ProviderHealth) models.HealthStatus {
	switch {
	case ph.IsUnhealthy():
		return models.HealthStatusFail
	case ph.IsDegraded():
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
