package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	envProduction = "production"
	envProd       = "prod"

	// 50 MB, shared by request bodies and individual uploaded files.
	defaultSizeLimit = 50 * 1024 * 1024
)

// Config holds all configuration for the API server. It is built once in main
// and passed by pointer to every component that needs it.
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`

	Server ServerConfig
	Auth   AuthConfig
	Mongo  MongoConfig
	Upload UploadConfig
	CORS   CORSConfig
	Media  MediaConfig
	Redis  RedisConfig
	Log    LogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"PORT" envDefault:"4000"`
	BodyLimit       int           `env:"BODY_LIMIT" envDefault:"52428800"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// ProxyHeader is read for the client IP only on requests arriving from
	// one of TrustedProxies.
	ProxyHeader    string   `env:"PROXY_HEADER"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET,required"`
	TokenTTL       time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	CookieName     string        `env:"AUTH_COOKIE_NAME" envDefault:"token"`
	LoginRateLimit int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginWindow    time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`
}

// MongoConfig holds document database settings.
type MongoConfig struct {
	URI            string        `env:"MONGODB_URL,required"`
	DatabaseName   string        `env:"DATABASE_NAME" envDefault:"course_platform"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"30s"`
}

// UploadConfig holds multipart upload settings.
type UploadConfig struct {
	TempDir     string `env:"UPLOAD_TEMP_DIR" envDefault:"/tmp"`
	MaxFileSize int64  `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"52428800"`
}

// CORSConfig holds cross-origin settings. A single "*" reflects any origin
// back to the caller so that credentials remain allowed.
type CORSConfig struct {
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
}

// MediaConfig holds the S3-compatible media host settings.
type MediaConfig struct {
	Endpoint       string `env:"MEDIA_ENDPOINT" envDefault:""`
	Region         string `env:"MEDIA_REGION" envDefault:"us-east-1"`
	Bucket         string `env:"MEDIA_BUCKET" envDefault:"course-platform-media"`
	AccessKeyID    string `env:"MEDIA_ACCESS_KEY_ID" envDefault:""`
	SecretKey      string `env:"MEDIA_SECRET_ACCESS_KEY" envDefault:""`
	Folder         string `env:"MEDIA_FOLDER" envDefault:"course-platform"`
	PublicBaseURL  string `env:"MEDIA_PUBLIC_BASE_URL" envDefault:""`
	ForcePathStyle bool   `env:"MEDIA_FORCE_PATH_STYLE" envDefault:"true"`
	EnsureBucket   bool   `env:"MEDIA_ENSURE_BUCKET" envDefault:"true"`
}

// RedisConfig holds the optional rate-limit storage settings.
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	Database int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:""`
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants env tags cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("jwt secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("token TTL must be positive")
	}
	if c.Mongo.URI == "" {
		return errors.New("mongodb url is required")
	}
	if c.Server.Port == "" {
		return errors.New("port is required")
	}
	if c.Server.BodyLimit <= 0 {
		return errors.New("body limit must be positive")
	}
	if c.Upload.MaxFileSize <= 0 {
		return errors.New("upload max file size must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode. Error
// details are hidden from clients in this mode.
func (c *Config) IsProduction() bool {
	e := strings.ToLower(strings.TrimSpace(c.Environment))
	return e == envProduction || e == envProd
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// AllowsAnyOrigin reports whether CORS reflects every origin.
func (c *CORSConfig) AllowsAnyOrigin() bool {
	for _, o := range c.AllowOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return len(c.AllowOrigins) == 0
}

// Default returns a configuration with the documented defaults and the given
// secret. It is meant for tests and local tooling.
func Default(secret string) *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "4000",
			BodyLimit:       defaultSizeLimit,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:      secret,
			TokenTTL:       24 * time.Hour,
			CookieName:     "token",
			LoginRateLimit: 10,
			LoginWindow:    time.Minute,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			DatabaseName:   "course_platform",
			ConnectTimeout: 30 * time.Second,
		},
		Upload: UploadConfig{
			TempDir:     "/tmp",
			MaxFileSize: defaultSizeLimit,
		},
		CORS: CORSConfig{AllowOrigins: []string{"*"}},
		Media: MediaConfig{
			Region:         "us-east-1",
			Bucket:         "course-platform-media",
			Folder:         "course-platform",
			ForcePathStyle: true,
			EnsureBucket:   true,
		},
		Redis: RedisConfig{Addr: "localhost:6379", PoolSize: 10},
		Log:   LogConfig{Level: "info"},
	}
}
