package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every setting the process needs, resolved once at
// startup. No other package reads environment variables.
type Config struct {
	MongoURI       string
	MongoDatabase  string
	Port           string
	GeminiAPIKey   string
	WeatherAPIKey  string
	WeatherAPIURL  string
	AWSRegion      string
	AWSBucketName  string
	RedisURL       string
	JWTSecret      string
	SendGridAPIKey string
	EmailFromName  string
	EmailFromAddr  string
}

// Load reads the .env file (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "wardrobe"),
		Port:           getEnv("PORT", "8080"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		WeatherAPIKey:  getEnv("WEATHER_API_KEY", ""),
		WeatherAPIURL:  getEnv("WEATHER_API_URL", "https://api.weatherapi.com/v1"),
		AWSRegion:      getEnv("AWS_REGION", "ap-northeast-1"),
		AWSBucketName:  getEnv("AWS_BUCKET_NAME", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "AI Fashion Assistant"),
		EmailFromAddr:  getEnv("EMAIL_FROM_ADDR", "no-reply@aifashion.app"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
