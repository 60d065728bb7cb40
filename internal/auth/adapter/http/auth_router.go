package http

import (
	"errors"
	"time"

	"course-platform/internal/auth/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	usecase      usecase.AuthUsecaseInterface
	cookieName   string
	cookieMaxAge time.Duration
	cookieSecure bool
	limit        LoginLimit
}

// LoginLimit configures rate limiting of the login endpoint. A nil Storage
// keeps counters in memory.
type LoginLimit struct {
	Max     int
	Window  time.Duration
	Storage fiber.Storage
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cookieName string, cookieMaxAge time.Duration, cookieSecure bool, limit LoginLimit) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase:      uc,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
		limit:        limit,
	}
}

// SetupAuthRoutes mounts the authentication routes on router
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router, middleware *AuthMiddleware) {
	router.Post("/login", h.rateLimiter(), h.Login)
	router.Get("/me", middleware.Authenticate(), h.Me)
}

func (h *AuthHTTPHandler) rateLimiter() fiber.Handler {
	if h.limit.Max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:               h.limit.Max,
		Expiration:        h.limit.Window,
		Storage:           h.limit.Storage,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many login attempts. Please try again later.",
			})
		},
	})
}

// Login handles user login
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	resp, err := h.usecase.Login(c.UserContext(), req)
	switch {
	case errors.Is(err, usecase.ErrMissingCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "All fields are required",
		})
	case errors.Is(err, usecase.ErrUserNotRegistered):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User is not registered with us",
		})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Password is incorrect",
		})
	case err != nil:
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieMaxAge),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"token":   resp.Token,
		"user":    resp.User,
		"message": "User logged in successfully",
	})
}

// Me returns the authenticated claim
func (h *AuthHTTPHandler) Me(c *fiber.Ctx) error {
	claims, _ := GetClaims(c)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":          claims.ID,
			"email":       claims.Email,
			"accountType": claims.AccountType,
		},
	})
}
