package responder

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "course-platform/internal/shared/errors"
	"course-platform/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"plain error", errors.New("boom"), 500, "Internal Server Error"},
		{"cors sentinel", fmt.Errorf("wrapped: %w", apperrors.ErrCORSOriginNotAllowed), 403, "CORS error - Origin not allowed"},
		{"cors text", errors.New("Not allowed by CORS"), 403, "CORS error - Origin not allowed"},
		{"app error", apperrors.NewNotFoundError("Course"), 404, "Course not found"},
		{"wrapped app error", fmt.Errorf("ctx: %w", apperrors.NewPayloadTooLargeError("File size limit has been reached")), 413, "File size limit has been reached"},
		{"app error without code", &apperrors.AppError{Message: "x"}, 500, "x"},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"), 405, "Method Not Allowed"},
		{"fiber error without message", &fiber.Error{Code: 502}, 502, "Internal Server Error"},
		{"nil", nil, 500, "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := Classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, message)
		})
	}
}

func runError(t *testing.T, production bool, err error) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(production, logger.NewNopLogger())})
	app.Get("/", func(c *fiber.Ctx) error { return err })

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler_Development(t *testing.T) {
	status, body := runError(t, false, pkgerrors.Wrap(errors.New("disk full"), "failed to save"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.Contains(t, body["error"], "disk full")
	assert.Contains(t, body["error"], "failed to save")
	assert.Contains(t, body["error"], "responder_test.go")
}

func TestErrorHandler_Production(t *testing.T) {
	status, body := runError(t, true, errors.New("secret detail"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, body, "error")
}

func TestErrorHandler_NotFoundRoute(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(true, logger.NewNopLogger())})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil), -1)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSuccess(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusCreated, "created", fiber.Map{"id": "1"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"id": "1"}, body["data"])
}
