package api

import (
	"context"
	"net/http"
	"time"

	"github.com/aifashion/wardrobe-backend/utils"
)

// HealthHandler handles GET /health with a per-service boolean map.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dbHealthy := false
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		dbHealthy = h.DB.Ping(ctx, nil) == nil
	}

	services := map[string]bool{
		"database":        dbHealthy,
		"ai_service":      h.AI != nil,
		"weather_service": h.Weather != nil,
		"storage":         h.StorageReady,
		"cache":           h.CacheReady,
	}

	// Cache is optional and never degrades overall status.
	status := "healthy"
	if !dbHealthy || h.AI == nil || h.Weather == nil || !h.StorageReady {
		status = "degraded"
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"services": services,
	})
}
