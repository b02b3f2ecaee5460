package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

const dbPingTimeout = 2 * time.Second

type componentCheck struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

type healthReport struct {
	Status     string                    `json:"status"`
	CheckedAt  time.Time                 `json:"checked_at"`
	Components map[string]componentCheck `json:"components"`
}

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// liveness: the process is up
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}

// readiness: the database answers a ping
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbPingTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)

	check := componentCheck{
		Status:    "healthy",
		LatencyMs: time.Since(start).Milliseconds(),
	}
	statusCode := http.StatusOK
	if err != nil {
		check.Status = "unhealthy"
		check.Message = err.Error()
		statusCode = http.StatusServiceUnavailable
	}

	report := healthReport{
		Status:     check.Status,
		CheckedAt:  time.Now(),
		Components: map[string]componentCheck{"postgres": check},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(report)
}
