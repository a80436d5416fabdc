package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/aifashion/wardrobe-backend/apperrors"
	"github.com/aifashion/wardrobe-backend/config"
	"github.com/aifashion/wardrobe-backend/models"
	"github.com/aifashion/wardrobe-backend/utils"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStore is the credential store surface the handlers need.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (string, error)
}

// WardrobeStore is the clothing-item store surface the handlers need.
type WardrobeStore interface {
	GetWardrobe(ctx context.Context, userID string) ([]models.ClothingItem, error)
	CheckDuplicate(ctx context.Context, userID, imageHash string) (bool, string, error)
	SaveItem(ctx context.Context, item *models.ClothingItem, image []byte) error
	DeleteItem(ctx context.Context, userID, itemID string) error
}

// AIClient covers both the tagging and the recommendation calls.
type AIClient interface {
	BatchAutoTag(ctx context.Context, images [][]byte) ([]models.ClothingTags, error)
	GenerateOutfitRecommendation(ctx context.Context, wardrobe []models.ClothingItem, weather *models.WeatherData, style, occasion string) (string, error)
	ParseRecommendedItems(recommendation string, wardrobe []models.ClothingItem) []models.ClothingItem
}

// WeatherProvider returns current conditions for a named city.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (*models.WeatherData, error)
}

// Handler carries every dependency the endpoints use. It is built once
// in main and passed to the mux; there are no package-level service
// handles. Nil fields mean the service is not configured and the
// affected endpoints answer 503.
type Handler struct {
	Config   *config.Config
	DB       *mongo.Client
	Users    UserStore
	Wardrobe WardrobeStore
	AI       AIClient
	Weather  WeatherProvider
	Mailer   *utils.Mailer

	StorageReady bool
	CacheReady   bool
}

// statusFromKind maps the closed error-kind set to HTTP status codes.
// Conflict maps to 400 because registration reports a taken username
// as a plain bad request.
func statusFromKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusBadRequest
	case apperrors.Unauthorized:
		return http.StatusUnauthorized
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.ServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondAppError converts a service-layer error at the boundary.
func respondAppError(w http.ResponseWriter, logger *strings.Builder, err error) {
	utils.RespondError(w, logger, apperrors.MessageOf(err), statusFromKind(apperrors.KindOf(err)))
}
