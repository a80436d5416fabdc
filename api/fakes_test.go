package api

import (
	"context"
	"strings"

	"github.com/aifashion/wardrobe-backend/apperrors"
	"github.com/aifashion/wardrobe-backend/config"
	"github.com/aifashion/wardrobe-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, apperrors.E(apperrors.NotFound, "user not found")
	}
	return user, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, username, passwordHash string) (string, error) {
	if _, ok := f.users[username]; ok {
		return "", apperrors.E(apperrors.Conflict, "username already exists")
	}
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	f.users[username] = user
	return user.ID.Hex(), nil
}

// fakeWardrobeStore is an in-memory WardrobeStore. saveFailures forces
// SaveItem to fail for specific item names.
type fakeWardrobeStore struct {
	items        []models.ClothingItem
	saveFailures map[string]bool
}

func newFakeWardrobeStore() *fakeWardrobeStore {
	return &fakeWardrobeStore{saveFailures: map[string]bool{}}
}

func (f *fakeWardrobeStore) GetWardrobe(_ context.Context, userID string) ([]models.ClothingItem, error) {
	result := []models.ClothingItem{}
	for _, item := range f.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeWardrobeStore) CheckDuplicate(_ context.Context, userID, imageHash string) (bool, string, error) {
	for _, item := range f.items {
		if item.UserID == userID && item.ImageHash == imageHash {
			return true, item.Name, nil
		}
	}
	return false, "", nil
}

func (f *fakeWardrobeStore) SaveItem(_ context.Context, item *models.ClothingItem, _ []byte) error {
	if f.saveFailures[item.Name] {
		return apperrors.E(apperrors.Unexpected, "failed to save item")
	}
	item.ID = primitive.NewObjectID()
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeWardrobeStore) DeleteItem(_ context.Context, userID, itemID string) error {
	for i, item := range f.items {
		if item.UserID == userID && item.ID.Hex() == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperrors.E(apperrors.NotFound, "item not found")
}

// fakeAIClient records calls and returns canned results.
type fakeAIClient struct {
	tags    []models.ClothingTags
	tagErr  error
	tagged  [][]byte
	tagCall int

	recommendation string
	recErr         error
	genCalls       int
	lastStyle      string
	lastOccasion   string
}

func (f *fakeAIClient) BatchAutoTag(_ context.Context, images [][]byte) ([]models.ClothingTags, error) {
	f.tagCall++
	f.tagged = images
	if f.tagErr != nil {
		return nil, f.tagErr
	}
	return f.tags[:len(images)], nil
}

func (f *fakeAIClient) GenerateOutfitRecommendation(_ context.Context, _ []models.ClothingItem, _ *models.WeatherData, style, occasion string) (string, error) {
	f.genCalls++
	f.lastStyle = style
	f.lastOccasion = occasion
	if f.recErr != nil {
		return "", f.recErr
	}
	return f.recommendation, nil
}

func (f *fakeAIClient) ParseRecommendedItems(recommendation string, wardrobe []models.ClothingItem) []models.ClothingItem {
	matched := []models.ClothingItem{}
	for _, item := range wardrobe {
		if item.Name != "" && strings.Contains(recommendation, item.Name) {
			matched = append(matched, item)
		}
	}
	return matched
}

// fakeWeatherProvider returns one canned snapshot or error.
type fakeWeatherProvider struct {
	weather *models.WeatherData
	err     error
	calls   int
}

func (f *fakeWeatherProvider) CurrentWeather(_ context.Context, _ string) (*models.WeatherData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.weather, nil
}

func newTestHandler() *Handler {
	return &Handler{
		Config: &config.Config{JWTSecret: "test-secret"},
	}
}
