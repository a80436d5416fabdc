package services

import (
	"context"
	"time"

	"github.com/aifashion/wardrobe-backend/apperrors"
	"github.com/aifashion/wardrobe-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService owns the users collection.
type UserService struct {
	users *mongo.Collection
}

// NewUserService creates the user store on the given database.
func NewUserService(client *mongo.Client, database string) *UserService {
	return &UserService{
		users: client.Database(database).Collection("users"),
	}
}

// FindByUsername looks a user up by exact username.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.E(apperrors.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Unexpected, "database error looking up user", err)
	}
	return &user, nil
}

// CreateUser inserts a new user and returns its id. The username must
// not already exist.
func (s *UserService) CreateUser(ctx context.Context, username, passwordHash string) (string, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return "", apperrors.Wrap(apperrors.Unexpected, "database error checking username", err)
	}
	if count > 0 {
		return "", apperrors.E(apperrors.Conflict, "username already exists")
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		return "", apperrors.Wrap(apperrors.Unexpected, "failed to create user", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperrors.E(apperrors.Unexpected, "unexpected inserted id type")
	}
	return oid.Hex(), nil
}
