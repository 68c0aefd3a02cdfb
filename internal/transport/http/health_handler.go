package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"tabula/internal/infrastructure"
)

var startTime = time.Now()

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// HealthHandler handles GET /api/healthz.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:  "ok",
		Version: infrastructure.ServiceVersion,
		Uptime:  time.Since(startTime).Round(time.Second).String(),
	})
}
