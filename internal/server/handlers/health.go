package handlers

import (
	"net/http"
	"time"

	"github.com/cellarlens/cellarlens/internal/server/response"
)

// HandleHealth handles GET /health, the liveness probe.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "cellarlens-api",
		"version": "v1",
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}
