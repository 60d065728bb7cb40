package repository

import (
	"context"

	"course-platform/internal/payment/domain/model"
)

// OrderRepository defines the data operations on orders
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
}
