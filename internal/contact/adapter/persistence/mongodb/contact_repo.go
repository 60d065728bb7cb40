package mongodb

import (
	"context"
	"fmt"
	"time"

	"course-platform/internal/contact/domain/model"
	"course-platform/internal/shared/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// ContactsCollection is the collection holding contact messages
const ContactsCollection = "contacts"

// MongoContactRepository stores contact messages in MongoDB
type MongoContactRepository struct {
	contacts *mongo.Collection
}

// NewMongoContactRepository creates a new MongoDB contact repository
func NewMongoContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{contacts: db.Collection(ContactsCollection)}
}

// SaveMessage inserts msg and sets its ID
func (r *MongoContactRepository) SaveMessage(ctx context.Context, msg *model.ContactMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	result, err := r.contacts.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	msg.ID = database.HexID(result.InsertedID)
	return nil
}
