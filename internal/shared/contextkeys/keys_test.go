package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	key := contextKey("testKey")
	assert.Equal(t, "course-platform context key testKey", key.String())
}

func TestContextKeys_Usage(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, UserIDKey, "user-123")
	ctx = context.WithValue(ctx, AccountTypeKey, "Student")
	ctx = context.WithValue(ctx, RequestIDKey, "req-456")

	assert.Equal(t, "user-123", ctx.Value(UserIDKey))
	assert.Equal(t, "Student", ctx.Value(AccountTypeKey))
	assert.Equal(t, "req-456", ctx.Value(RequestIDKey))
	assert.Nil(t, ctx.Value(contextKey("other")))
}
