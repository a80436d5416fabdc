package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClothingTags holds the labels the AI tagging call assigns to one image.
type ClothingTags struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Style    string `json:"style"`
	Warmth   int    `json:"warmth"` // 1 (lightest) .. 5 (warmest)
}

// ClothingItem represents one wardrobe entry owned by a user.
type ClothingItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	Color     string             `bson:"color" json:"color"`
	Style     string             `bson:"style" json:"style"`
	Warmth    int                `bson:"warmth" json:"warmth"`
	ImageKey  string             `bson:"image_key" json:"-"`          // S3 object key
	ImageHash string             `bson:"image_hash" json:"-"`         // SHA-256 of the raw image bytes
	ImageURL  string             `bson:"-" json:"image_url,omitempty"` // presigned, filled on read
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
