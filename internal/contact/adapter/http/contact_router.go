package http

import (
	"errors"

	"course-platform/internal/contact/domain/model"
	"course-platform/internal/contact/usecase"
	apperrors "course-platform/internal/shared/errors"
	"course-platform/internal/shared/responder"

	"github.com/gofiber/fiber/v2"
)

// ContactHTTPHandler handles contact form submissions
type ContactHTTPHandler struct {
	usecase *usecase.ContactUsecase
}

// NewContactHTTPHandler creates a new contact HTTP handler
func NewContactHTTPHandler(uc *usecase.ContactUsecase) *ContactHTTPHandler {
	return &ContactHTTPHandler{usecase: uc}
}

// SetupContactRoutes mounts the contact routes on router
func (h *ContactHTTPHandler) SetupContactRoutes(router fiber.Router) {
	router.Post("/contact", h.Contact)
}

// Contact stores a contact message
func (h *ContactHTTPHandler) Contact(c *fiber.Ctx) error {
	var msg model.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return apperrors.NewValidationError("Invalid request body").WithCause(err)
	}

	saved, err := h.usecase.Submit(c.UserContext(), msg)
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		return apperrors.NewValidationError("Email and message are required").WithCause(err)
	case errors.Is(err, usecase.ErrInvalidEmail):
		return apperrors.NewValidationError("Email address is invalid").WithCause(err)
	case err != nil:
		return err
	}
	return responder.Success(c, fiber.StatusOK, "Message received successfully", saved)
}
