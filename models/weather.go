package models

// WeatherData is the fixed-shape snapshot of current conditions for a
// city. It is produced per request and never persisted.
type WeatherData struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"` // °C
	FeelsLike   float64 `json:"feels_like"`  // °C
	Condition   string  `json:"condition"`   // e.g. "Partly cloudy"
	Humidity    int     `json:"humidity"`    // percent
	WindKph     float64 `json:"wind_kph"`
}
