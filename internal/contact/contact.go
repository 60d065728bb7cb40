package contact

import (
	contacthttp "course-platform/internal/contact/adapter/http"
	"course-platform/internal/contact/adapter/persistence/mongodb"
	"course-platform/internal/contact/usecase"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// ContactModule represents the complete contact module
type ContactModule struct {
	handler *contacthttp.ContactHTTPHandler
}

// NewContactModule creates a new contact module instance
func NewContactModule(db *mongo.Database) *ContactModule {
	repo := mongodb.NewMongoContactRepository(db)
	return &ContactModule{
		handler: contacthttp.NewContactHTTPHandler(usecase.NewContactUsecase(repo)),
	}
}

// RegisterRoutes registers contact routes with the provided router
func (m *ContactModule) RegisterRoutes(router fiber.Router) {
	m.handler.SetupContactRoutes(router)
}
