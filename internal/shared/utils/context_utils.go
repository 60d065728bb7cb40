package utils

import (
	"context"
	"errors"

	"course-platform/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound       = errors.New("userID not found in context")
	ErrUserIDNotString      = errors.New("userID in context is not a string")
	ErrAccountTypeNotFound  = errors.New("accountType not found in context")
	ErrAccountTypeNotString = errors.New("accountType in context is not a string")
	ErrRequestIDNotFound    = errors.New("requestID not found in context")
	ErrRequestIDNotString   = errors.New("requestID in context is not a string")
)

func stringFromContext(ctx context.Context, key interface{}, notFound, notString error) (string, error) {
	val := ctx.Value(key)
	if val == nil {
		return "", notFound
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}

// GetUserIDFromContext retrieves the authenticated user ID from the context.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.UserIDKey, ErrUserIDNotFound, ErrUserIDNotString)
}

// GetAccountTypeFromContext retrieves the authenticated account type from the context.
func GetAccountTypeFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.AccountTypeKey, ErrAccountTypeNotFound, ErrAccountTypeNotString)
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// WithAccountType adds account type to context
func WithAccountType(ctx context.Context, accountType string) context.Context {
	return context.WithValue(ctx, contextkeys.AccountTypeKey, accountType)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}
