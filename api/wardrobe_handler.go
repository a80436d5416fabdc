package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aifashion/wardrobe-backend/apperrors"
	"github.com/aifashion/wardrobe-backend/utils"
)

// DeleteItemRequest represents the payload for a single delete
type DeleteItemRequest struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
}

// BatchDeleteRequest represents the payload for a batch delete
type BatchDeleteRequest struct {
	UserID  string   `json:"user_id"`
	ItemIDs []string `json:"item_ids"`
}

// GetWardrobeHandler handles GET /api/wardrobe?user_id=
func (h *Handler) GetWardrobeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Wardrobe API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.Wardrobe == nil {
		utils.RespondError(w, &logMessageBuilder, "Wardrobe service not ready", http.StatusServiceUnavailable)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.RespondError(w, &logMessageBuilder, "user_id is required", http.StatusBadRequest)
		return
	}

	items, err := h.Wardrobe.GetWardrobe(r.Context(), userID)
	if err != nil {
		respondAppError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Fetched %d items for user %s", len(items), userID))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
		"total":   len(items),
	})
}

// DeleteItemHandler handles POST /api/wardrobe/delete
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Item API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.Wardrobe == nil {
		utils.RespondError(w, &logMessageBuilder, "Wardrobe service not ready", http.StatusServiceUnavailable)
		return
	}

	var req DeleteItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.ItemID == "" {
		utils.RespondError(w, &logMessageBuilder, "user_id and item_id are required", http.StatusBadRequest)
		return
	}

	if err := h.Wardrobe.DeleteItem(r.Context(), req.UserID, req.ItemID); err != nil {
		// A missing item is reported in the body, not as a transport
		// failure.
		if apperrors.KindOf(err) == apperrors.NotFound {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Item %s not found", req.ItemID))
			utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
				"success": false,
				"message": "Item not found",
			})
			return
		}
		respondAppError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Deleted item %s", req.ItemID))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Item deleted",
	})
}

// BatchDeleteHandler handles POST /api/wardrobe/batch-delete.
// Every id is attempted; overall success requires all of them to have
// been deleted.
func (h *Handler) BatchDeleteHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Batch Delete API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.Wardrobe == nil {
		utils.RespondError(w, &logMessageBuilder, "Wardrobe service not ready", http.StatusServiceUnavailable)
		return
	}

	var req BatchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || len(req.ItemIDs) == 0 {
		utils.RespondError(w, &logMessageBuilder, "user_id and item_ids are required", http.StatusBadRequest)
		return
	}

	successCount := 0
	failCount := 0
	for _, itemID := range req.ItemIDs {
		if err := h.Wardrobe.DeleteItem(r.Context(), req.UserID, itemID); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to delete %s: %v", itemID, err))
			failCount++
			continue
		}
		successCount++
	}

	utils.AddToLogMessage(&logMessageBuilder,
		fmt.Sprintf("Batch delete: %d deleted, %d failed", successCount, failCount))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       failCount == 0,
		"success_count": successCount,
		"fail_count":    failCount,
	})
}
