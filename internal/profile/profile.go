package profile

import (
	authhttp "course-platform/internal/auth/adapter/http"
	"course-platform/internal/auth/domain/repository"
	profilehttp "course-platform/internal/profile/adapter/http"
	"course-platform/internal/profile/usecase"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/media"
	"course-platform/internal/shared/upload"

	"github.com/gofiber/fiber/v2"
)

// ProfileModule represents the complete profile module
type ProfileModule struct {
	handler *profilehttp.ProfileHTTPHandler
	auth    *authhttp.AuthMiddleware
	uploads *upload.Interceptor
}

// NewProfileModule creates a new profile module instance
func NewProfileModule(users repository.UserRepository, auth *authhttp.AuthMiddleware, uploads *upload.Interceptor, uploader media.Uploader, log logger.Logger) *ProfileModule {
	return &ProfileModule{
		handler: profilehttp.NewProfileHTTPHandler(usecase.NewProfileUsecase(users, uploader, log)),
		auth:    auth,
		uploads: uploads,
	}
}

// RegisterRoutes registers profile routes with the provided router
func (m *ProfileModule) RegisterRoutes(router fiber.Router) {
	m.handler.SetupProfileRoutes(router, m.auth, m.uploads)
}
