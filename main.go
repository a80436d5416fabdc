package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/aifashion/wardrobe-backend/api"
	"github.com/aifashion/wardrobe-backend/cache"
	"github.com/aifashion/wardrobe-backend/config"
	"github.com/aifashion/wardrobe-backend/services"
	"github.com/aifashion/wardrobe-backend/utils"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// MongoDB is the one hard dependency.
	mongoClient, err := utils.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	// Object storage for wardrobe images. Without it, items are stored
	// without image objects and /health reports storage as down.
	var storage *utils.S3Storage
	if cfg.AWSBucketName != "" {
		storage, err = utils.NewS3Storage(ctx, cfg.AWSRegion, cfg.AWSBucketName)
		if err != nil {
			log.Printf("Warning: S3 unavailable (%v). Continuing without image storage.", err)
			storage = nil
		}
	} else {
		log.Println("Warning: AWS_BUCKET_NAME not set, image storage disabled")
	}

	// Optional weather cache.
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	handler := &api.Handler{
		Config:       cfg,
		DB:           mongoClient,
		Users:        services.NewUserService(mongoClient, cfg.MongoDatabase),
		Wardrobe:     services.NewWardrobeService(mongoClient, cfg.MongoDatabase, storage),
		StorageReady: storage != nil,
		CacheReady:   cacheClient != nil,
	}

	if cfg.GeminiAPIKey != "" {
		aiService, err := services.NewAIService(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: Gemini unavailable (%v). AI endpoints disabled.", err)
		} else {
			defer aiService.Close()
			handler.AI = aiService
		}
	} else {
		log.Println("Warning: GEMINI_API_KEY not set, AI endpoints disabled")
	}

	if cfg.WeatherAPIKey != "" {
		handler.Weather = services.NewWeatherService(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cacheClient)
	} else {
		log.Println("Warning: WEATHER_API_KEY not set, weather endpoints disabled")
	}

	if cfg.SendGridAPIKey != "" {
		handler.Mailer = &utils.Mailer{
			APIKey:   cfg.SendGridAPIKey,
			FromName: cfg.EmailFromName,
			FromAddr: cfg.EmailFromAddr,
		}
	}

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", corsMiddleware(handler.LoginHandler))
	mux.HandleFunc("/api/register", corsMiddleware(handler.RegisterHandler))
	mux.HandleFunc("/api/weather", corsMiddleware(handler.WeatherHandler))
	mux.HandleFunc("/api/upload", corsMiddleware(handler.UploadHandler))
	mux.HandleFunc("/api/wardrobe", corsMiddleware(handler.GetWardrobeHandler))
	mux.HandleFunc("/api/wardrobe/delete", corsMiddleware(handler.DeleteItemHandler))
	mux.HandleFunc("/api/wardrobe/batch-delete", corsMiddleware(handler.BatchDeleteHandler))
	mux.HandleFunc("/api/recommendation", corsMiddleware(handler.RecommendationHandler))
	mux.HandleFunc("/health", corsMiddleware(handler.HealthHandler))

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, utils.LatencyMiddleware(mux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
