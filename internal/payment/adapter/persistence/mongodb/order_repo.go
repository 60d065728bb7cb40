package mongodb

import (
	"context"
	"fmt"
	"time"

	"course-platform/internal/payment/domain/model"
	"course-platform/internal/shared/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrdersCollection is the collection holding orders
const OrdersCollection = "orders"

// MongoOrderRepository implements the OrderRepository interface using MongoDB
type MongoOrderRepository struct {
	orders *mongo.Collection
}

// NewMongoOrderRepository creates a new MongoDB order repository
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{orders: db.Collection(OrdersCollection)}
}

// EnsureIndexes creates the unique receipt index
func (r *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "receipt", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create orders receipt index: %w", err)
	}
	return nil
}

// CreateOrder inserts order and sets its ID
func (r *MongoOrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	result, err := r.orders.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	order.ID = database.HexID(result.InsertedID)
	return nil
}
