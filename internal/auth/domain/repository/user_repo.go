package repository

import (
	"context"

	"course-platform/internal/auth/domain/model"
)

// UserRepository defines the data operations on user accounts
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdateImage(ctx context.Context, id, imageURL string) (*model.User, error)
}
