package course

import (
	"context"

	authhttp "course-platform/internal/auth/adapter/http"
	coursehttp "course-platform/internal/course/adapter/http"
	"course-platform/internal/course/adapter/persistence/mongodb"
	"course-platform/internal/course/domain/repository"
	"course-platform/internal/course/usecase"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/media"
	"course-platform/internal/shared/upload"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// CourseModule represents the complete course module
type CourseModule struct {
	repository *mongodb.MongoCourseRepository
	usecase    usecase.CourseUsecaseInterface
	handler    *coursehttp.CourseHTTPHandler
	auth       *authhttp.AuthMiddleware
	uploads    *upload.Interceptor
}

// NewCourseModule creates a new course module instance
func NewCourseModule(db *mongo.Database, auth *authhttp.AuthMiddleware, uploads *upload.Interceptor, uploader media.Uploader, log logger.Logger) *CourseModule {
	repo := mongodb.NewMongoCourseRepository(db)
	uc := usecase.NewCourseUsecase(repo, repo, uploader, log)

	return &CourseModule{
		repository: repo,
		usecase:    uc,
		handler:    coursehttp.NewCourseHTTPHandler(uc),
		auth:       auth,
		uploads:    uploads,
	}
}

// EnsureIndexes creates the indexes the module relies on
func (m *CourseModule) EnsureIndexes(ctx context.Context) error {
	return m.repository.EnsureIndexes(ctx)
}

// RegisterRoutes registers course routes with the provided router
func (m *CourseModule) RegisterRoutes(router fiber.Router) {
	m.handler.SetupCourseRoutes(router, m.auth, m.uploads)
}

// GetCourseRepository returns the course repository
func (m *CourseModule) GetCourseRepository() repository.CourseRepository {
	return m.repository
}
