package responder

import (
	"errors"
	"fmt"
	"strings"

	apperrors "course-platform/internal/shared/errors"
	"course-platform/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

const (
	msgInternal = "Internal Server Error"
	msgCORS     = "CORS error - Origin not allowed"
)

// ErrorHandler renders every error that reaches Fiber as
// {success:false, message, error?}. The error field is only set outside
// production.
func ErrorHandler(production bool, log logger.Logger) fiber.ErrorHandler {
	log = log.WithComponent("http")
	return func(c *fiber.Ctx, err error) error {
		status, message := Classify(err)

		entry := log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
			"path":   c.Path(),
			"method": c.Method(),
			"status": status,
		})
		if status >= fiber.StatusInternalServerError {
			entry.Errorf("%+v", err)
		} else {
			entry.Debugf("%v", err)
		}

		body := fiber.Map{
			"success": false,
			"message": message,
		}
		if !production {
			body["error"] = fmt.Sprintf("%+v", err)
		}
		return c.Status(status).JSON(body)
	}
}

// Classify maps an error to a status code and client message
func Classify(err error) (int, string) {
	if err == nil {
		return fiber.StatusInternalServerError, msgInternal
	}
	if errors.Is(err, apperrors.ErrCORSOriginNotAllowed) || strings.Contains(err.Error(), "CORS") {
		return fiber.StatusForbidden, msgCORS
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		status := appErr.HTTPCode
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		message := appErr.Message
		if message == "" {
			message = msgInternal
		}
		return status, message
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		message := fe.Message
		if message == "" {
			message = msgInternal
		}
		return fe.Code, message
	}
	return fiber.StatusInternalServerError, msgInternal
}

// Success writes a {success:true, message, data?} body
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}
