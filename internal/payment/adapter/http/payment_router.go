package http

import (
	"errors"

	authhttp "course-platform/internal/auth/adapter/http"
	"course-platform/internal/payment/domain/model"
	"course-platform/internal/payment/usecase"
	apperrors "course-platform/internal/shared/errors"
	"course-platform/internal/shared/responder"

	"github.com/gofiber/fiber/v2"
)

// PaymentHTTPHandler handles HTTP requests for payments
type PaymentHTTPHandler struct {
	usecase usecase.PaymentUsecaseInterface
}

// NewPaymentHTTPHandler creates a new payment HTTP handler
func NewPaymentHTTPHandler(uc usecase.PaymentUsecaseInterface) *PaymentHTTPHandler {
	return &PaymentHTTPHandler{usecase: uc}
}

// SetupPaymentRoutes mounts the payment routes on router
func (h *PaymentHTTPHandler) SetupPaymentRoutes(router fiber.Router, auth *authhttp.AuthMiddleware) {
	router.Post("/capturePayment", auth.Authenticate(), auth.IsStudent(), h.CapturePayment)
}

// CapturePayment records an order for the requested courses
func (h *PaymentHTTPHandler) CapturePayment(c *fiber.Ctx) error {
	var req usecase.CapturePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body").WithCause(err)
	}

	userID, _ := authhttp.GetUserID(c)
	order, err := h.usecase.CapturePayment(c.UserContext(), userID, req.Courses)
	switch {
	case errors.Is(err, model.ErrNoCourses):
		return apperrors.NewValidationError("Please provide Course ID").WithCause(err)
	case errors.Is(err, model.ErrCourseNotFound):
		return apperrors.NewNotFoundError("Course").WithCause(err)
	case err != nil:
		return err
	}
	return responder.Success(c, fiber.StatusOK, "Order created successfully", order)
}
