package repository

import (
	"context"

	"course-platform/internal/auth/domain/model"
)

// TokenService issues and verifies session tokens.
type TokenService interface {
	GenerateToken(ctx context.Context, user *model.User) (string, error)
	// ValidateToken verifies the signature and validity window of a token.
	// Failures wrap model.ErrTokenExpired or model.ErrTokenInvalid when they
	// fall in one of those classes; any other error is returned as is.
	ValidateToken(ctx context.Context, tokenString string) (*model.Claims, error)
}
