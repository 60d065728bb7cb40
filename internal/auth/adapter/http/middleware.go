package http

import (
	"course-platform/internal/auth/domain/model"
	"course-platform/internal/auth/usecase"
	"course-platform/internal/shared/contextkeys"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware exposes the gate as Fiber handlers
type AuthMiddleware struct {
	gate       *usecase.Gate
	production bool
	log        logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware. Outside
// production, rejection bodies carry the underlying error text.
func NewAuthMiddleware(gate *usecase.Gate, production bool, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		gate:       gate,
		production: production,
		log:        log.WithComponent("auth-gate"),
	}
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// attaches the decoded claim to the request.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.gate.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return m.reject(c, err)
		}

		c.Locals(contextkeys.ClaimsLocal, claims)
		ctx := utils.WithUserID(c.UserContext(), claims.ID)
		ctx = utils.WithAccountType(ctx, string(claims.AccountType))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequireRole lets the request through only when the attached claim has
// exactly the guard's account type. Mount it after Authenticate.
func (m *AuthMiddleware) RequireRole(guard usecase.RoleGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, _ := GetClaims(c)
		if err := m.gate.RequireRole(claims, guard); err != nil {
			return m.reject(c, err)
		}
		return c.Next()
	}
}

// IsStudent allows Student accounts only
func (m *AuthMiddleware) IsStudent() fiber.Handler {
	return m.RequireRole(usecase.StudentGuard)
}

// IsInstructor allows Instructor accounts only
func (m *AuthMiddleware) IsInstructor() fiber.Handler {
	return m.RequireRole(usecase.InstructorGuard)
}

// IsAdmin allows Admin accounts only
func (m *AuthMiddleware) IsAdmin() fiber.Handler {
	return m.RequireRole(usecase.AdminGuard)
}

// StatusFor maps a gate rejection kind onto an HTTP status.
//
// Role mismatches answer 401 rather than 403; clients of this API key off
// the 401.
func StatusFor(kind usecase.GateErrorKind) int {
	switch kind {
	case usecase.KindUnauthenticated, usecase.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, err error) error {
	gateErr, ok := usecase.AsGateError(err)
	if !ok {
		gateErr = &usecase.GateError{Kind: usecase.KindInternal, Message: usecase.MsgGateFailure, Cause: err}
	}

	log := m.log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
		"path":   c.Path(),
		"method": c.Method(),
		"kind":   gateErr.Kind.String(),
	})
	if gateErr.Kind == usecase.KindInternal {
		log.Errorf("%s: %s", gateErr.Message, gateErr.Detail())
	} else {
		log.Debugf("request rejected: %s", gateErr.Message)
	}

	body := fiber.Map{
		"success": false,
		"message": gateErr.Message,
	}
	if detail := gateErr.Detail(); detail != "" && !m.production {
		body["error"] = detail
	}
	return c.Status(StatusFor(gateErr.Kind)).JSON(body)
}

// GetClaims returns the claim attached by Authenticate
func GetClaims(c *fiber.Ctx) (*model.Claims, bool) {
	claims, ok := c.Locals(contextkeys.ClaimsLocal).(*model.Claims)
	return claims, ok && claims != nil
}

// GetUserID helper function to get user ID from the attached claim
func GetUserID(c *fiber.Ctx) (string, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return "", false
	}
	return claims.ID, true
}
