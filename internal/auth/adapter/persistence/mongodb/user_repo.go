package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course-platform/internal/auth/domain/model"
	"course-platform/internal/shared/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection is the collection holding user accounts
const UsersCollection = "users"

// MongoUserRepository implements the UserRepository interface using MongoDB
type MongoUserRepository struct {
	usersCollection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		usersCollection: db.Collection(UsersCollection),
	}
}

// EnsureIndexes creates the unique email index
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.usersCollection.Indexes().CreateOne(ctx, emailIndex); err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, model.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"email": email})
}

// GetUserByID retrieves a user by ID
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, model.ErrUserNotFound
	}
	return r.findOne(ctx, database.IDFilter(id))
}

// UpdateImage stores a new display picture URL and returns the updated user
func (r *MongoUserRepository) UpdateImage(ctx context.Context, id, imageURL string) (*model.User, error) {
	if id == "" {
		return nil, model.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{"image": imageURL, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user model.User
	err := r.usersCollection.FindOneAndUpdate(ctx, database.IDFilter(id), update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user image: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	if err := r.usersCollection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
