package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	store       StateChecker
	redisClient *redis.Client
}

// StateChecker probes the persistence layer.
type StateChecker interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// NewHealthHandler creates a new HealthHandler. redisClient may be nil when
// the in-memory rate limiter is configured.
func NewHealthHandler(store StateChecker, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		store:       store,
		redisClient: redisClient,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.store.Get(ctx, "health_probe"); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unhealthy", err.Error())
		return
	}

	status := map[string]string{
		"status": "ready",
		"store":  "ok",
	}

	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unhealthy", err.Error())
			return
		}
		status["redis"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
