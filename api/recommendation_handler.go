package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aifashion/wardrobe-backend/utils"
)

// RecommendationRequest represents the payload for outfit recommendation
type RecommendationRequest struct {
	UserID   string `json:"user_id"`
	City     string `json:"city"`
	Style    string `json:"style"`
	Occasion string `json:"occasion"`
}

// RecommendationHandler handles POST /api/recommendation.
// An empty wardrobe or missing weather fails with 404 before any AI
// generation call is made.
func (h *Handler) RecommendationHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Recommendation API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.AI == nil || h.Weather == nil || h.Wardrobe == nil {
		utils.RespondError(w, &logMessageBuilder, "Recommendation service not ready", http.StatusServiceUnavailable)
		return
	}

	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.City == "" {
		utils.RespondError(w, &logMessageBuilder, "user_id and city are required", http.StatusBadRequest)
		return
	}

	wardrobe, err := h.Wardrobe.GetWardrobe(r.Context(), req.UserID)
	if err != nil {
		respondAppError(w, &logMessageBuilder, err)
		return
	}
	if len(wardrobe) == 0 {
		utils.RespondError(w, &logMessageBuilder, "Wardrobe is empty, upload some clothes first", http.StatusNotFound)
		return
	}

	weather, err := h.Weather.CurrentWeather(r.Context(), req.City)
	if err != nil {
		respondAppError(w, &logMessageBuilder, err)
		return
	}

	style := req.Style
	if style == "" {
		style = "unrestricted"
	}
	occasion := req.Occasion
	if occasion == "" {
		occasion = "casual outing"
	}

	recommendation, err := h.AI.GenerateOutfitRecommendation(r.Context(), wardrobe, weather, style, occasion)
	if err != nil {
		respondAppError(w, &logMessageBuilder, err)
		return
	}

	recommendedItems := h.AI.ParseRecommendedItems(recommendation, wardrobe)

	utils.AddToLogMessage(&logMessageBuilder,
		fmt.Sprintf("Recommended %d of %d items for user %s", len(recommendedItems), len(wardrobe), req.UserID))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"recommendation": recommendation,
		"items":          recommendedItems,
		"weather":        weather,
	})
}
