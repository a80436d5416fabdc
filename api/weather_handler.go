package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aifashion/wardrobe-backend/utils"
)

// WeatherHandler handles GET /api/weather?city=
func (h *Handler) WeatherHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Weather API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.Weather == nil {
		utils.RespondError(w, &logMessageBuilder, "Weather service not ready", http.StatusServiceUnavailable)
		return
	}

	city := r.URL.Query().Get("city")
	if city == "" {
		city = "Taipei"
	}

	weather, err := h.Weather.CurrentWeather(r.Context(), city)
	if err != nil {
		respondAppError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Weather for %s: %.1f°C %s", weather.City, weather.Temperature, weather.Condition))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"city":        weather.City,
		"temperature": weather.Temperature,
		"feels_like":  weather.FeelsLike,
		"condition":   weather.Condition,
		"humidity":    weather.Humidity,
		"wind_kph":    weather.WindKph,
	})
}
