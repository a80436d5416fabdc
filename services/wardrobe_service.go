package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/aifashion/wardrobe-backend/apperrors"
	"github.com/aifashion/wardrobe-backend/models"
	"github.com/aifashion/wardrobe-backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WardrobeService owns the clothing_items collection and the image
// object storage. Storage may be nil, in which case items are saved
// without image objects and listed without presigned URLs.
type WardrobeService struct {
	items   *mongo.Collection
	storage *utils.S3Storage
}

// NewWardrobeService creates the wardrobe store on the given database.
func NewWardrobeService(client *mongo.Client, database string, storage *utils.S3Storage) *WardrobeService {
	return &WardrobeService{
		items:   client.Database(database).Collection("clothing_items"),
		storage: storage,
	}
}

// ImageHash returns the SHA-256 digest of raw image bytes as lowercase
// hex. Duplicate detection compares these digests per user.
func ImageHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GetWardrobe returns every item owned by the user, newest first, with
// presigned image URLs filled in where possible.
func (s *WardrobeService) GetWardrobe(ctx context.Context, userID string) ([]models.ClothingItem, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.items.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Unexpected, "failed to fetch wardrobe", err)
	}
	defer cursor.Close(ctx)

	var items []models.ClothingItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, apperrors.Wrap(apperrors.Unexpected, "failed to decode wardrobe", err)
	}

	if items == nil {
		items = []models.ClothingItem{}
	}

	if s.storage != nil {
		for i := range items {
			if items[i].ImageKey == "" {
				continue
			}
			if url, err := s.storage.PresignURL(ctx, items[i].ImageKey); err == nil {
				items[i].ImageURL = url
			}
		}
	}

	return items, nil
}

// CheckDuplicate reports whether the user already owns an item with the
// given image hash, and the name of that item when one exists.
func (s *WardrobeService) CheckDuplicate(ctx context.Context, userID, imageHash string) (bool, string, error) {
	var existing models.ClothingItem
	err := s.items.FindOne(ctx, bson.M{"user_id": userID, "image_hash": imageHash}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return false, "", nil
	}
	if err != nil {
		return false, "", apperrors.Wrap(apperrors.Unexpected, "database error checking duplicate", err)
	}
	return true, existing.Name, nil
}

// SaveItem uploads the image bytes to object storage and inserts the
// item record. On success the item's ID and presigned URL are set.
func (s *WardrobeService) SaveItem(ctx context.Context, item *models.ClothingItem, image []byte) error {
	if s.storage != nil {
		objectKey := fmt.Sprintf("wardrobe_images/%s/%s.jpg", item.UserID, item.ImageHash)
		if _, err := s.storage.Upload(ctx, bytes.NewReader(image), objectKey, "image/jpeg"); err != nil {
			return apperrors.Wrap(apperrors.Unexpected, "failed to upload image", err)
		}
		item.ImageKey = objectKey
	} else {
		log.Println("Warning: object storage not configured, saving item without image")
	}

	item.CreatedAt = time.Now()

	res, err := s.items.InsertOne(ctx, item)
	if err != nil {
		return apperrors.Wrap(apperrors.Unexpected, "failed to save item", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}

	if s.storage != nil && item.ImageKey != "" {
		if url, err := s.storage.PresignURL(ctx, item.ImageKey); err == nil {
			item.ImageURL = url
		}
	}

	return nil
}

// DeleteItem removes one item owned by the user. Deleting an id that
// does not exist (or belongs to someone else) reports NotFound.
func (s *WardrobeService) DeleteItem(ctx context.Context, userID, itemID string) error {
	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return apperrors.E(apperrors.NotFound, "invalid item id")
	}

	res, err := s.items.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return apperrors.Wrap(apperrors.Unexpected, "failed to delete item", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.E(apperrors.NotFound, "item not found")
	}
	return nil
}
