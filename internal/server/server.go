package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"course-platform/internal/config"
	"course-platform/internal/shared/accesslog"
	"course-platform/internal/shared/contextkeys"
	apperrors "course-platform/internal/shared/errors"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/responder"
	"course-platform/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const (
	APIPrefix = "/api/v1"

	corsMethods       = "GET,POST,PUT,DELETE,PATCH,OPTIONS"
	corsHeaders       = "Content-Type, Authorization, X-Requested-With, Accept, Origin"
	corsExposeHeaders = "set-cookie"

	healthTimeout = 5 * time.Second
)

// ErrPortInUse is returned by Listen when the address is already bound.
var ErrPortInUse = errors.New("port already in use")

// Module is a route group that mounts itself under a prefix.
type Module interface {
	RegisterRoutes(router fiber.Router)
}

// Mount binds a Module to a path below APIPrefix.
type Mount struct {
	Prefix string
	Module Module
}

// HealthFunc reports whether the server's dependencies are reachable.
type HealthFunc func(ctx context.Context) error

// New builds the Fiber application: middleware chain, root and health
// routes, and every mounted route group.
func New(cfg *config.Config, log logger.Logger, accessLog *zap.Logger, health HealthFunc, mounts ...Mount) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Course Platform API",
		BodyLimit:             cfg.Server.BodyLimit,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          responder.ErrorHandler(cfg.IsProduction(), log),
		// c.IP() keys the login limiter, so the proxy header is only
		// honoured for listed proxies.
		ProxyHeader:             cfg.Server.ProxyHeader,
		EnableTrustedProxyCheck: cfg.Server.ProxyHeader != "",
		TrustedProxies:          cfg.Server.TrustedProxies,
	})

	app.Use(requestid.New())
	app.Use(requestContext)
	if accessLog != nil {
		app.Use(accesslog.New(accessLog))
	}
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(originGuard(&cfg.CORS))
	app.Use(cors.New(corsConfig(&cfg.CORS)))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Your server is up and running....",
		})
	})
	app.Get("/health", healthHandler(health, log))

	api := app.Group(APIPrefix)
	for _, m := range mounts {
		m.Module.RegisterRoutes(api.Group(m.Prefix))
		log.WithComponent("server").Debugf("mounted %s%s", APIPrefix, m.Prefix)
	}

	return app
}

func requestContext(c *fiber.Ctx) error {
	if rid, ok := c.Locals(contextkeys.RequestIDLocal).(string); ok && rid != "" {
		c.SetUserContext(utils.WithRequestID(c.UserContext(), rid))
	}
	return c.Next()
}

// corsConfig reflects the request origin back rather than answering "*",
// so that credentials stay allowed for any origin. Origins compare
// case-insensitively.
func corsConfig(cfg *config.CORSConfig) cors.Config {
	allowed := allowedOrigins(cfg)
	return cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			if cfg.AllowsAnyOrigin() {
				return true
			}
			_, ok := allowed[strings.ToLower(origin)]
			return ok
		},
		AllowMethods:     corsMethods,
		AllowHeaders:     corsHeaders,
		ExposeHeaders:    corsExposeHeaders,
		AllowCredentials: true,
	}
}

// originGuard fails requests whose Origin is outside an explicit allow list.
func originGuard(cfg *config.CORSConfig) fiber.Handler {
	if cfg.AllowsAnyOrigin() {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	allowed := allowedOrigins(cfg)
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if _, ok := allowed[strings.ToLower(origin)]; !ok {
			return fmt.Errorf("origin %q: %w", origin, apperrors.ErrCORSOriginNotAllowed)
		}
		return c.Next()
	}
}

func allowedOrigins(cfg *config.CORSConfig) map[string]struct{} {
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		o = strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	return allowed
}

func healthHandler(health HealthFunc, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
			defer cancel()

			if err := health(ctx); err != nil {
				log.WithContext(c.UserContext()).Errorf("Health check failed: %v", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"success": false,
					"status":  "UNHEALTHY",
					"message": "One or more services are unhealthy",
				})
			}
		}
		return c.JSON(fiber.Map{
			"success":   true,
			"status":    "HEALTHY",
			"timestamp": time.Now().UTC(),
		})
	}
}

// Listen binds addr. A port conflict is reported as ErrPortInUse so callers
// can tell it apart from other bind failures.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%s: %w", addr, ErrPortInUse)
		}
		return nil, fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	return ln, nil
}

// Run serves app on ln until ctx is cancelled, then drains in-flight
// requests within shutdownTimeout.
func Run(ctx context.Context, app *fiber.App, ln net.Listener, shutdownTimeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Listener(ln)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-serveErr
}
