package health

import (
	"encoding/json"
	"net/http"

	"worktrack/internal/shared/database"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new HealthHandler backed by the given database.
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// ServeHTTP handles GET /healthz. The endpoint requires no authentication and
// bypasses the response cache; it reports unhealthy when the database is
// unreachable.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := h.db.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(HealthResponse{OK: false})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{OK: true})
}
