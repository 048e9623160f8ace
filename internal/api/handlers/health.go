package handlers

import (
	"net/http"

	"github.com/redis/go-redis/v9"
)

// Checker reports whether a dependency is usable.
type Checker interface {
	Available() error
}

type HealthHandler struct {
	phonemizer Checker
	redis      *redis.Client
}

// NewHealthHandler builds the health endpoints. rdb may be nil when the job
// queue is disabled.
func NewHealthHandler(p Checker, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{phonemizer: p, redis: rdb}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	if h.phonemizer != nil {
		if err := h.phonemizer.Available(); err != nil {
			checks["phonemizer"] = "unhealthy: " + err.Error()
		} else {
			checks["phonemizer"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, map[string]interface{}{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}
