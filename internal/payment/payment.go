package payment

import (
	"context"

	authhttp "course-platform/internal/auth/adapter/http"
	paymenthttp "course-platform/internal/payment/adapter/http"
	"course-platform/internal/payment/adapter/persistence/mongodb"
	"course-platform/internal/payment/usecase"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentModule represents the complete payment module
type PaymentModule struct {
	repository *mongodb.MongoOrderRepository
	handler    *paymenthttp.PaymentHTTPHandler
	auth       *authhttp.AuthMiddleware
}

// NewPaymentModule creates a new payment module instance
func NewPaymentModule(db *mongo.Database, auth *authhttp.AuthMiddleware, catalog usecase.CourseCatalog) *PaymentModule {
	repo := mongodb.NewMongoOrderRepository(db)
	return &PaymentModule{
		repository: repo,
		handler:    paymenthttp.NewPaymentHTTPHandler(usecase.NewPaymentUsecase(repo, catalog)),
		auth:       auth,
	}
}

// EnsureIndexes creates the indexes the module relies on
func (m *PaymentModule) EnsureIndexes(ctx context.Context) error {
	return m.repository.EnsureIndexes(ctx)
}

// RegisterRoutes registers payment routes with the provided router
func (m *PaymentModule) RegisterRoutes(router fiber.Router) {
	m.handler.SetupPaymentRoutes(router, m.auth)
}
