package database

import (
	"context"
	"fmt"

	"course-platform/internal/config"
	"course-platform/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a MongoDB client and verifies it with a ping
func Connect(ctx context.Context, cfg config.MongoConfig, log logger.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"database": cfg.DatabaseName,
	}).Info("MongoDB connection established")
	return client, nil
}

// IDValue converts a document id to the value stored in _id. Hex strings
// that parse as ObjectIDs are stored as ObjectIDs, anything else as is.
func IDValue(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// IDFilter matches a single document by id
func IDFilter(id string) bson.M {
	return bson.M{"_id": IDValue(id)}
}

// IDsFilter matches every document whose id is in ids
func IDsFilter(ids []string) bson.M {
	values := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		values = append(values, IDValue(id))
	}
	return bson.M{"_id": bson.M{"$in": values}}
}

// HexID returns the string form of an inserted id
func HexID(inserted interface{}) string {
	switch v := inserted.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
