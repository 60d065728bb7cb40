package upload

import (
	"os"
	"path/filepath"
	"strings"

	"course-platform/internal/config"
	"course-platform/internal/shared/contextkeys"
	apperrors "course-platform/internal/shared/errors"
	"course-platform/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MsgFileTooLarge is returned when a single file exceeds the configured cap
const MsgFileTooLarge = "File size limit has been reached"

// File is a multipart file buffered to local disk
type File struct {
	Field        string
	OriginalName string
	Path         string
	Size         int64
	ContentType  string
}

// Files groups the buffered files of a request by form field
type Files map[string][]*File

// First returns the first file sent under field
func (f Files) First(field string) (*File, bool) {
	if files := f[field]; len(files) > 0 {
		return files[0], true
	}
	return nil, false
}

// Interceptor buffers multipart uploads to a temporary directory for the
// duration of a request
type Interceptor struct {
	tempDir     string
	maxFileSize int64
	log         logger.Logger
}

// NewInterceptor creates an upload interceptor
func NewInterceptor(cfg config.UploadConfig, log logger.Logger) *Interceptor {
	return &Interceptor{
		tempDir:     cfg.TempDir,
		maxFileSize: cfg.MaxFileSize,
		log:         log.WithComponent("upload"),
	}
}

// Handler returns the Fiber middleware. Requests that are not multipart pass
// through untouched.
func (i *Interceptor) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			return c.Next()
		}

		form, err := c.MultipartForm()
		if err != nil {
			return apperrors.NewValidationError("Invalid multipart form").WithCause(err)
		}

		for _, headers := range form.File {
			for _, fh := range headers {
				if fh.Size > i.maxFileSize {
					return apperrors.NewPayloadTooLargeError(MsgFileTooLarge).WithCause(apperrors.ErrFileTooLarge)
				}
			}
		}

		if err := os.MkdirAll(i.tempDir, 0o755); err != nil {
			return apperrors.NewInfrastructureError("Failed to prepare upload directory").WithCause(err)
		}

		files := make(Files)
		defer i.cleanup(files)

		for field, headers := range form.File {
			for _, fh := range headers {
				path := filepath.Join(i.tempDir, TempName(fh.Filename))
				if err := c.SaveFile(fh, path); err != nil {
					return apperrors.NewInfrastructureError("Failed to store upload").WithCause(err)
				}
				files[field] = append(files[field], &File{
					Field:        field,
					OriginalName: fh.Filename,
					Path:         path,
					Size:         fh.Size,
					ContentType:  fh.Header.Get(fiber.HeaderContentType),
				})
			}
		}

		c.Locals(contextkeys.UploadsLocal, files)
		return c.Next()
	}
}

func (i *Interceptor) cleanup(files Files) {
	for _, list := range files {
		for _, f := range list {
			if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
				i.log.WithFields(map[string]interface{}{"path": f.Path}).Warnf("failed to remove upload: %v", err)
			}
		}
	}
}

// TempName returns a collision-free, filesystem-safe name that keeps the
// original extension
func TempName(original string) string {
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		name = "file"
	}
	return uuid.NewString() + "-" + name + ext
}

// GetFiles returns the files buffered for the request
func GetFiles(c *fiber.Ctx) Files {
	files, _ := c.Locals(contextkeys.UploadsLocal).(Files)
	return files
}
