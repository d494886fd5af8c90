package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"paperpulse/internal/infrastructure"
	"paperpulse/pkg/contracts"
)

// HealthHandler serves liveness and readiness information.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.GetHealth)
	return r
}

// GetHealth handles GET /api/healthz.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":       "ok",
		"service":      infrastructure.ServiceName,
		"version":      contracts.Version,
		"version_info": contracts.GetVersionInfo(),
		"uptime":       time.Since(h.startedAt).String(),
	})
}
