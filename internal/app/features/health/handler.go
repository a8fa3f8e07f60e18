// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/gateway"
	"github.com/coreledger/onboardweb/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	API *gateway.Client
	Log *zap.Logger
}

func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status string `json:"status"`
	API    string `json:"api"`
	Error  string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "api":"reachable" }
//
// When the ERP API is unreachable: 503 and
//
//	{ "status":"error", "api":"unreachable", "error":"…" }
//
// The app itself is still serving in that case; the 503 tells probes
// that sign-in and onboarding cannot complete right now.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if err := h.API.Ping(ctx); err != nil {
		h.Log.Warn("health-check: api unreachable",
			zap.String("base_url", h.API.BaseURL()),
			zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status: "error",
			API:    "unreachable",
			Error:  err.Error(),
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{
		Status: "ok",
		API:    "reachable",
	})
}
