package auth

import (
	"context"
	"fmt"

	authhttp "course-platform/internal/auth/adapter/http"
	"course-platform/internal/auth/adapter/persistence/mongodb"
	"course-platform/internal/auth/adapter/security"
	"course-platform/internal/auth/domain/repository"
	"course-platform/internal/auth/usecase"
	"course-platform/internal/config"
	"course-platform/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	repository *mongodb.MongoUserRepository
	tokenSvc   repository.TokenService
	gate       *usecase.Gate
	usecase    usecase.AuthUsecaseInterface
	handler    *authhttp.AuthHTTPHandler
	middleware *authhttp.AuthMiddleware
}

// NewAuthModule creates a new authentication module instance. A nil
// limiterStorage keeps login rate-limit counters in process memory.
func NewAuthModule(db *mongo.Database, cfg *config.Config, log logger.Logger, limiterStorage fiber.Storage) (*AuthModule, error) {
	userRepo := mongodb.NewMongoUserRepository(db)

	tokenSvc, err := security.NewJWTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	gate := usecase.NewGate(tokenSvc)
	authUsecase := usecase.NewAuthUsecase(userRepo, tokenSvc)

	handler := authhttp.NewAuthHTTPHandler(
		authUsecase,
		cfg.Auth.CookieName,
		cfg.Auth.TokenTTL,
		cfg.IsProduction(),
		authhttp.LoginLimit{
			Max:     cfg.Auth.LoginRateLimit,
			Window:  cfg.Auth.LoginWindow,
			Storage: limiterStorage,
		},
	)

	return &AuthModule{
		repository: userRepo,
		tokenSvc:   tokenSvc,
		gate:       gate,
		usecase:    authUsecase,
		handler:    handler,
		middleware: authhttp.NewAuthMiddleware(gate, cfg.IsProduction(), log),
	}, nil
}

// EnsureIndexes creates the indexes the module relies on
func (am *AuthModule) EnsureIndexes(ctx context.Context) error {
	return am.repository.EnsureIndexes(ctx)
}

// RegisterRoutes registers authentication routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutes(router, am.middleware)
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the auth middleware shared by every protected route
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}

// GetGate returns the token gate
func (am *AuthModule) GetGate() *usecase.Gate {
	return am.gate
}

// GetUserRepository returns the user repository
func (am *AuthModule) GetUserRepository() repository.UserRepository {
	return am.repository
}

// GetTokenService returns the token service
func (am *AuthModule) GetTokenService() repository.TokenService {
	return am.tokenSvc
}
