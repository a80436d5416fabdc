package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthDegradedWhenServicesMissing(t *testing.T) {
	h := newTestHandler() // no DB, no AI, no weather

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", body["status"])
	}

	services, ok := body["services"].(map[string]interface{})
	if !ok {
		t.Fatalf("services is %T, want object", body["services"])
	}
	for _, name := range []string{"database", "ai_service", "weather_service", "storage", "cache"} {
		if _, present := services[name]; !present {
			t.Errorf("services map missing %q", name)
		}
	}
	if services["ai_service"] != false {
		t.Errorf("ai_service = %v, want false", services["ai_service"])
	}
}

func TestHealthReportsConfiguredServices(t *testing.T) {
	h := newTestHandler()
	h.AI = &fakeAIClient{}
	h.Weather = &fakeWeatherProvider{weather: testWeather()}
	h.StorageReady = true
	h.CacheReady = true

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthHandler(rec, req)

	body := decodeBody(t, rec)
	services := body["services"].(map[string]interface{})
	if services["ai_service"] != true || services["weather_service"] != true {
		t.Errorf("configured services reported down: %v", services)
	}
	// Database is still down, so overall status stays degraded.
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded without a database", body["status"])
	}
}
