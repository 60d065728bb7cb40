package http

import (
	"errors"

	authhttp "course-platform/internal/auth/adapter/http"
	"course-platform/internal/auth/domain/model"
	"course-platform/internal/profile/usecase"
	apperrors "course-platform/internal/shared/errors"
	"course-platform/internal/shared/responder"
	"course-platform/internal/shared/upload"

	"github.com/gofiber/fiber/v2"
)

// PictureField is the multipart field carrying a display picture
const PictureField = "displayPicture"

// ProfileHTTPHandler handles HTTP requests for the caller's profile
type ProfileHTTPHandler struct {
	usecase usecase.ProfileUsecaseInterface
}

// NewProfileHTTPHandler creates a new profile HTTP handler
func NewProfileHTTPHandler(uc usecase.ProfileUsecaseInterface) *ProfileHTTPHandler {
	return &ProfileHTTPHandler{usecase: uc}
}

// SetupProfileRoutes mounts the profile routes on router
func (h *ProfileHTTPHandler) SetupProfileRoutes(router fiber.Router, auth *authhttp.AuthMiddleware, uploads *upload.Interceptor) {
	router.Get("/getUserDetails", auth.Authenticate(), h.GetUserDetails)
	router.Put("/updateDisplayPicture", auth.Authenticate(), uploads.Handler(), h.UpdateDisplayPicture)
}

// GetUserDetails returns the caller's account
func (h *ProfileHTTPHandler) GetUserDetails(c *fiber.Ctx) error {
	userID, _ := authhttp.GetUserID(c)
	user, err := h.usecase.GetUserDetails(c.UserContext(), userID)
	if err != nil {
		return mapError(err)
	}
	return responder.Success(c, fiber.StatusOK, "User Data fetched successfully", user)
}

// UpdateDisplayPicture replaces the caller's display picture
func (h *ProfileHTTPHandler) UpdateDisplayPicture(c *fiber.Ctx) error {
	userID, _ := authhttp.GetUserID(c)

	picturePath := ""
	if f, ok := upload.GetFiles(c).First(PictureField); ok {
		picturePath = f.Path
	}

	user, err := h.usecase.UpdateDisplayPicture(c.UserContext(), userID, picturePath)
	if err != nil {
		return mapError(err)
	}
	return responder.Success(c, fiber.StatusOK, "Image Updated successfully", user)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return apperrors.NewNotFoundError("User").WithCause(err)
	case errors.Is(err, usecase.ErrPictureRequired):
		return apperrors.NewValidationError("Display picture is required").WithCause(err)
	case errors.Is(err, usecase.ErrUnsupportedPicture):
		return apperrors.NewValidationError("Display picture must be an image").WithCause(err)
	default:
		return err
	}
}
