package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aifashion/wardrobe-backend/apperrors"
	"github.com/aifashion/wardrobe-backend/cache"
	"github.com/aifashion/wardrobe-backend/models"
)

const weatherCacheTTL = 10 * time.Minute

// WeatherService fetches current conditions from a weatherapi.com
// style provider, with an optional Redis cache in front.
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
}

// NewWeatherService creates a weather client. cacheClient may be nil.
func NewWeatherService(apiKey, baseURL string, cacheClient cache.Cache) *WeatherService {
	return &WeatherService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cacheClient,
	}
}

// CurrentWeather returns the current conditions for a city.
func (s *WeatherService) CurrentWeather(ctx context.Context, city string) (*models.WeatherData, error) {
	cacheKey := "weather:" + strings.ToLower(city)

	if s.cache != nil {
		var cached models.WeatherData
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no",
		s.baseURL, url.QueryEscape(s.apiKey), url.QueryEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Unexpected, "failed to build weather request", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ServiceUnavailable, "weather provider unreachable", err)
	}
	defer resp.Body.Close()

	// The provider answers 400 for unknown locations.
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.E(apperrors.NotFound, "no weather data for city")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.E(apperrors.Unexpected,
			fmt.Sprintf("weather provider returned status %d", resp.StatusCode))
	}

	var payload struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current struct {
			TempC      float64 `json:"temp_c"`
			FeelslikeC float64 `json:"feelslike_c"`
			Humidity   int     `json:"humidity"`
			WindKph    float64 `json:"wind_kph"`
			Condition  struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Wrap(apperrors.Unexpected, "failed to decode weather response", err)
	}

	weather := &models.WeatherData{
		City:        payload.Location.Name,
		Temperature: payload.Current.TempC,
		FeelsLike:   payload.Current.FeelslikeC,
		Condition:   payload.Current.Condition.Text,
		Humidity:    payload.Current.Humidity,
		WindKph:     payload.Current.WindKph,
	}
	if weather.City == "" {
		weather.City = city
	}

	if s.cache != nil {
		// Cache failures only cost us a refetch.
		_ = s.cache.SetJSON(ctx, cacheKey, weather, weatherCacheTTL)
	}

	return weather, nil
}
