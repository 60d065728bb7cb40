package mongodb

import (
	"context"
	"testing"

	"course-platform/internal/payment/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoOrderRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		order := &model.Order{UserID: "u1", Courses: []string{"c1"}, Amount: 10, Receipt: "r1"}

		require.NoError(t, repo.CreateOrder(context.Background(), order))

		assert.NotEmpty(t, order.ID)
		assert.False(t, order.CreatedAt.IsZero())
	})

	mt.Run("create error", func(mt *mtest.T) {
		repo := NewMongoOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "boom"}))

		assert.Error(t, repo.CreateOrder(context.Background(), &model.Order{}))
	})

	mt.Run("indexes", func(mt *mtest.T) {
		repo := NewMongoOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(t, repo.EnsureIndexes(context.Background()))
	})
}
