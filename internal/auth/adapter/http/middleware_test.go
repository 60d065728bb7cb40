package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authhttp "course-platform/internal/auth/adapter/http"
	"course-platform/internal/auth/adapter/security"
	"course-platform/internal/auth/domain/model"
	"course-platform/internal/auth/usecase"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const middlewareSecret = "middleware-test-secret"

type MiddlewareTestSuite struct {
	suite.Suite
	app        *fiber.App
	tokens     *security.JWTokenService
	middleware *authhttp.AuthMiddleware
}

func (suite *MiddlewareTestSuite) SetupTest() {
	tokens, err := security.NewJWTokenService(middlewareSecret, time.Hour)
	require.NoError(suite.T(), err)
	suite.tokens = tokens
	suite.middleware = authhttp.NewAuthMiddleware(usecase.NewGate(tokens), false, logger.NewNopLogger())
	suite.app = fiber.New()
}

func (suite *MiddlewareTestSuite) tokenFor(accountType model.AccountType) string {
	token, err := suite.tokens.GenerateToken(context.Background(), &model.User{
		ID:          "user-123",
		Email:       "test@example.com",
		AccountType: accountType,
	})
	require.NoError(suite.T(), err)
	return token
}

func (suite *MiddlewareTestSuite) do(path, authorization string) (int, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := suite.app.Test(req, -1)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func (suite *MiddlewareTestSuite) mountProtected() {
	suite.app.Get("/protected", suite.middleware.Authenticate(), func(c *fiber.Ctx) error {
		claims, ok := authhttp.GetClaims(c)
		if !ok {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "claims not found"})
		}
		userID, _ := utils.GetUserIDFromContext(c.UserContext())
		return c.JSON(fiber.Map{
			"id":          claims.ID,
			"accountType": claims.AccountType,
			"ctxUserID":   userID,
		})
	})
}

func (suite *MiddlewareTestSuite) TestAuthenticate_Success() {
	suite.mountProtected()

	status, body := suite.do("/protected", "Bearer "+suite.tokenFor(model.AccountTypeStudent))

	assert.Equal(suite.T(), http.StatusOK, status)
	assert.Equal(suite.T(), "user-123", body["id"])
	assert.Equal(suite.T(), "Student", body["accountType"])
	assert.Equal(suite.T(), "user-123", body["ctxUserID"])
}

func (suite *MiddlewareTestSuite) TestAuthenticate_MissingHeader() {
	suite.mountProtected()

	status, body := suite.do("/protected", "")

	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	assert.Equal(suite.T(), false, body["success"])
	assert.Equal(suite.T(), "Token is Missing or Invalid Format", body["message"])
	assert.NotContains(suite.T(), body, "error")
}

func (suite *MiddlewareTestSuite) TestAuthenticate_WrongScheme() {
	suite.mountProtected()

	status, body := suite.do("/protected", "Basic dXNlcjpwYXNz")

	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	assert.Equal(suite.T(), "Token is Missing or Invalid Format", body["message"])
}

func (suite *MiddlewareTestSuite) TestAuthenticate_ExpiredToken() {
	suite.mountProtected()
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &model.Claims{
		ID:          "user-123",
		AccountType: model.AccountTypeStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte(middlewareSecret))
	require.NoError(suite.T(), err)

	status, body := suite.do("/protected", "Bearer "+expired)

	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	assert.Equal(suite.T(), "Token has expired", body["message"])
	assert.NotEmpty(suite.T(), body["error"])
}

func (suite *MiddlewareTestSuite) TestAuthenticate_ForeignSignature() {
	suite.mountProtected()
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &model.Claims{
		ID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("another-secret"))
	require.NoError(suite.T(), err)

	status, body := suite.do("/protected", "Bearer "+foreign)

	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	assert.Equal(suite.T(), "Invalid Token", body["message"])
}

func (suite *MiddlewareTestSuite) TestAuthenticate_MissingIdentifier() {
	suite.mountProtected()
	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":       "test@example.com",
		"accountType": "Admin",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(middlewareSecret))
	require.NoError(suite.T(), err)

	status, body := suite.do("/protected", "Bearer "+noID)

	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	assert.Equal(suite.T(), "Invalid Token Payload", body["message"])
}

func (suite *MiddlewareTestSuite) TestAuthenticate_ProductionHidesDetail() {
	suite.middleware = authhttp.NewAuthMiddleware(usecase.NewGate(suite.tokens), true, logger.NewNopLogger())
	suite.mountProtected()

	status, body := suite.do("/protected", "Bearer not-a-token")

	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	assert.Equal(suite.T(), "Invalid Token", body["message"])
	assert.NotContains(suite.T(), body, "error")
}

func (suite *MiddlewareTestSuite) TestRoleGuards() {
	suite.app.Get("/student", suite.middleware.Authenticate(), suite.middleware.IsStudent(), okHandler)
	suite.app.Get("/instructor", suite.middleware.Authenticate(), suite.middleware.IsInstructor(), okHandler)
	suite.app.Get("/admin", suite.middleware.Authenticate(), suite.middleware.IsAdmin(), okHandler)

	testCases := []struct {
		name        string
		path        string
		accountType model.AccountType
		status      int
		message     string
	}{
		{"student on student route", "/student", model.AccountTypeStudent, http.StatusOK, "ok"},
		{"instructor on instructor route", "/instructor", model.AccountTypeInstructor, http.StatusOK, "ok"},
		{"admin on admin route", "/admin", model.AccountTypeAdmin, http.StatusOK, "ok"},
		{"student on instructor route", "/instructor", model.AccountTypeStudent, http.StatusUnauthorized, "This Page is protected only for Instructor"},
		{"admin on student route", "/student", model.AccountTypeAdmin, http.StatusUnauthorized, "This Page is protected only for student"},
		{"instructor on admin route", "/admin", model.AccountTypeInstructor, http.StatusUnauthorized, "This Page is protected only for Admin"},
		{"lowercase admin", "/admin", "admin", http.StatusUnauthorized, "This Page is protected only for Admin"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			status, body := suite.do(tc.path, "Bearer "+suite.tokenFor(tc.accountType))

			assert.Equal(suite.T(), tc.status, status)
			assert.Equal(suite.T(), tc.message, body["message"])
		})
	}
}

func (suite *MiddlewareTestSuite) TestRoleGuard_WithoutAuthenticate() {
	suite.app.Get("/student", suite.middleware.IsStudent(), okHandler)
	suite.app.Get("/instructor", suite.middleware.IsInstructor(), okHandler)
	suite.app.Get("/admin", suite.middleware.IsAdmin(), okHandler)

	testCases := []struct {
		path        string
		accountType model.AccountType
		message     string
	}{
		{"/student", model.AccountTypeStudent, "Error while checking user validity with student accountType"},
		{"/instructor", model.AccountTypeInstructor, "Error while checking user validity with Instructor accountType"},
		{"/admin", model.AccountTypeAdmin, "Error while checking user validity with Admin accountType"},
	}

	for _, tc := range testCases {
		status, body := suite.do(tc.path, "Bearer "+suite.tokenFor(tc.accountType))

		assert.Equal(suite.T(), http.StatusInternalServerError, status, tc.path)
		assert.Equal(suite.T(), tc.message, body["message"])
	}
}

func (suite *MiddlewareTestSuite) TestGuardRejectionStopsChain() {
	reached := false
	suite.app.Get("/admin", suite.middleware.Authenticate(), suite.middleware.IsAdmin(), func(c *fiber.Ctx) error {
		reached = true
		return okHandler(c)
	})

	status, _ := suite.do("/admin", "Bearer "+suite.tokenFor(model.AccountTypeStudent))

	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	assert.False(suite.T(), reached)
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "message": "ok"})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, authhttp.StatusFor(usecase.KindUnauthenticated))
	assert.Equal(t, http.StatusUnauthorized, authhttp.StatusFor(usecase.KindUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, authhttp.StatusFor(usecase.KindInternal))
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
