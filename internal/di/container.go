package di

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"course-platform/internal/auth"
	"course-platform/internal/config"
	"course-platform/internal/contact"
	"course-platform/internal/course"
	"course-platform/internal/payment"
	"course-platform/internal/profile"
	"course-platform/internal/server"
	"course-platform/internal/shared/database"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/media"
	"course-platform/internal/shared/storage"
	"course-platform/internal/shared/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container owns every long-lived dependency of the API server and the
// order in which they are started and stopped
type Container struct {
	mu sync.RWMutex

	Config *config.Config
	Logger logger.Logger

	// Infrastructure
	MongoClient    *mongo.Client
	MongoDB        *mongo.Database
	Media          *media.S3Host
	Redis          *redis.Client
	LimiterStorage *storage.RedisStorage
	Uploads        *upload.Interceptor

	// Module instances
	AuthModule    *auth.AuthModule
	ProfileModule *profile.ProfileModule
	PaymentModule *payment.PaymentModule
	CourseModule  *course.CourseModule
	ContactModule *contact.ContactModule
}

// NewContainer creates an empty container for cfg
func NewContainer(cfg *config.Config, log logger.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: log.WithComponent("container"),
	}
}

// Initialize connects every backing service and builds the modules. Any
// failure is fatal for the caller.
func (c *Container) Initialize(ctx context.Context) error {
	if err := c.InitializeMongo(ctx); err != nil {
		return err
	}
	if err := c.InitializeMedia(ctx); err != nil {
		return err
	}
	if err := c.InitializeRedis(ctx); err != nil {
		return err
	}
	if err := c.InitializeModules(); err != nil {
		return err
	}
	return c.EnsureIndexes(ctx)
}

// InitializeMongo connects to MongoDB and selects the configured database
func (c *Container) InitializeMongo(ctx context.Context) error {
	client, err := database.Connect(ctx, c.Config.Mongo, c.Logger)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.MongoClient = client
	c.MongoDB = client.Database(c.Config.Mongo.DatabaseName)
	return nil
}

// InitializeMedia connects to the media host and checks its bucket
func (c *Container) InitializeMedia(ctx context.Context) error {
	host, err := media.NewS3Host(c.Config.Media, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create media host: %w", err)
	}
	if err := host.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect media host: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Media = host
	return nil
}

// InitializeRedis connects the rate-limit storage when Redis is enabled.
// When disabled, limiter counters stay in process memory.
func (c *Container) InitializeRedis(ctx context.Context) error {
	if !c.Config.Redis.Enabled {
		c.Logger.Info("Redis disabled, login rate limits are kept in memory")
		return nil
	}

	client := storage.NewRedisClient(c.Config.Redis)
	store := storage.NewRedisStorage(client, "")
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Redis = client
	c.LimiterStorage = store
	c.Logger.WithFields(map[string]interface{}{"addr": c.Config.Redis.Addr}).Info("Redis connection established")
	return nil
}

// InitializeModules builds the five route groups on top of the connected
// infrastructure
func (c *Container) InitializeModules() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.MongoDB == nil {
		return errors.New("MongoDB must be initialized before modules")
	}
	if c.Media == nil {
		return errors.New("media host must be initialized before modules")
	}

	var limiterStorage fiber.Storage
	if c.LimiterStorage != nil {
		limiterStorage = c.LimiterStorage
	}

	authModule, err := auth.NewAuthModule(c.MongoDB, c.Config, c.Logger, limiterStorage)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	guard := authModule.GetMiddleware()
	c.Uploads = upload.NewInterceptor(c.Config.Upload, c.Logger)

	c.AuthModule = authModule
	c.CourseModule = course.NewCourseModule(c.MongoDB, guard, c.Uploads, c.Media, c.Logger)
	c.PaymentModule = payment.NewPaymentModule(c.MongoDB, guard, c.CourseModule.GetCourseRepository())
	c.ProfileModule = profile.NewProfileModule(authModule.GetUserRepository(), guard, c.Uploads, c.Media, c.Logger)
	c.ContactModule = contact.NewContactModule(c.MongoDB)
	return nil
}

// EnsureIndexes creates the indexes every module relies on
func (c *Container) EnsureIndexes(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.AuthModule == nil {
		return errors.New("modules must be initialized before indexes")
	}
	if err := c.AuthModule.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("auth indexes: %w", err)
	}
	if err := c.CourseModule.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("course indexes: %w", err)
	}
	if err := c.PaymentModule.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("payment indexes: %w", err)
	}
	return nil
}

// Mounts returns the route groups in mounting order
func (c *Container) Mounts() []server.Mount {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return []server.Mount{
		{Prefix: "/auth", Module: c.AuthModule},
		{Prefix: "/profile", Module: c.ProfileModule},
		{Prefix: "/payment", Module: c.PaymentModule},
		{Prefix: "/course", Module: c.CourseModule},
		{Prefix: "/contact", Module: c.ContactModule},
	}
}

// HealthCheck pings every connected backing service
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoClient != nil {
		if err := c.MongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}
	if c.Media != nil {
		if err := c.Media.Ping(ctx); err != nil {
			return fmt.Errorf("media host health check failed: %w", err)
		}
	}
	if c.LimiterStorage != nil {
		if err := c.LimiterStorage.Ping(ctx); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}
	return nil
}

// Cleanup releases connections in reverse order of initialization
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	c.AuthModule, c.ProfileModule, c.PaymentModule, c.CourseModule, c.ContactModule = nil, nil, nil, nil, nil

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
		c.Redis = nil
		c.LimiterStorage = nil
	}
	c.Media = nil

	if c.MongoClient != nil {
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect MongoDB: %w", err))
		}
		c.MongoClient = nil
		c.MongoDB = nil
	}

	return errors.Join(errs...)
}

// Close gracefully shuts down all services in the container with timeout
func (c *Container) Close() error {
	c.Logger.Info("Closing container resources...")

	ctx, cancel := context.WithTimeout(context.Background(), c.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("cleanup errors occurred: %v", err)
		return err
	}

	c.Logger.Info("Container resources closed")
	return nil
}
