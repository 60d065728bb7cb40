package http

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	authhttp "course-platform/internal/auth/adapter/http"
	"course-platform/internal/course/domain/model"
	"course-platform/internal/course/usecase"
	apperrors "course-platform/internal/shared/errors"
	"course-platform/internal/shared/responder"
	"course-platform/internal/shared/upload"

	"github.com/gofiber/fiber/v2"
)

// ThumbnailField is the multipart field carrying a course thumbnail
const ThumbnailField = "thumbnailImage"

// CourseHTTPHandler handles HTTP requests for courses and categories
type CourseHTTPHandler struct {
	usecase usecase.CourseUsecaseInterface
}

// NewCourseHTTPHandler creates a new course HTTP handler
func NewCourseHTTPHandler(uc usecase.CourseUsecaseInterface) *CourseHTTPHandler {
	return &CourseHTTPHandler{usecase: uc}
}

// SetupCourseRoutes mounts the course routes on router
func (h *CourseHTTPHandler) SetupCourseRoutes(router fiber.Router, auth *authhttp.AuthMiddleware, uploads *upload.Interceptor) {
	router.Get("/getAllCourses", h.GetAllCourses)
	router.Get("/showAllCategories", h.ShowAllCategories)
	router.Post("/createCategory", auth.Authenticate(), auth.IsAdmin(), h.CreateCategory)
	router.Post("/createCourse", auth.Authenticate(), auth.IsInstructor(), uploads.Handler(), h.CreateCourse)
}

// GetAllCourses lists every course
func (h *CourseHTTPHandler) GetAllCourses(c *fiber.Ctx) error {
	courses, err := h.usecase.ListCourses(c.UserContext())
	if err != nil {
		return err
	}
	return responder.Success(c, fiber.StatusOK, "All courses fetched successfully", courses)
}

// ShowAllCategories lists every category
func (h *CourseHTTPHandler) ShowAllCategories(c *fiber.Ctx) error {
	categories, err := h.usecase.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return responder.Success(c, fiber.StatusOK, "All categories fetched successfully", categories)
}

// CreateCategory adds a category
func (h *CourseHTTPHandler) CreateCategory(c *fiber.Ctx) error {
	var req usecase.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body").WithCause(err)
	}

	category, err := h.usecase.CreateCategory(c.UserContext(), req)
	if err != nil {
		return mapError(err)
	}
	return responder.Success(c, fiber.StatusOK, "Category Created Successfully", category)
}

// CreateCourse stores a course owned by the authenticated instructor
func (h *CourseHTTPHandler) CreateCourse(c *fiber.Ctx) error {
	instructorID, _ := authhttp.GetUserID(c)

	req, err := parseCourseForm(c)
	if err != nil {
		return err
	}

	thumbnailPath := ""
	if f, ok := upload.GetFiles(c).First(ThumbnailField); ok {
		thumbnailPath = f.Path
	}

	course, err := h.usecase.CreateCourse(c.UserContext(), instructorID, req, thumbnailPath)
	if err != nil {
		return mapError(err)
	}
	return responder.Success(c, fiber.StatusOK, "Course Created Successfully", course)
}

func parseCourseForm(c *fiber.Ctx) (usecase.CreateCourseRequest, error) {
	req := usecase.CreateCourseRequest{
		CourseName:        c.FormValue("courseName"),
		CourseDescription: c.FormValue("courseDescription"),
		WhatYouWillLearn:  c.FormValue("whatYouWillLearn"),
		Category:          c.FormValue("category"),
		Status:            model.CourseStatus(c.FormValue("status")),
	}

	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, apperrors.NewValidationError("Price must be a number").WithCause(err)
		}
		if math.IsNaN(price) || math.IsInf(price, 0) {
			return req, apperrors.NewValidationError("Price must be a number")
		}
		req.Price = price
	}

	var err error
	if req.Tag, err = parseList(c.FormValue("tag")); err != nil {
		return req, apperrors.NewValidationError("Invalid tag list").WithCause(err)
	}
	if req.Instructions, err = parseList(c.FormValue("instructions")); err != nil {
		return req, apperrors.NewValidationError("Invalid instructions list").WithCause(err)
	}
	return req, nil
}

// parseList accepts a JSON array or a comma separated list
func parseList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		return apperrors.NewValidationError("All Fields are Mandatory").WithCause(err)
	case errors.Is(err, model.ErrCategoryNotFound):
		return apperrors.NewNotFoundError("Category").WithCause(err)
	case errors.Is(err, model.ErrCategoryExists):
		return apperrors.NewConflictError("Category already exists").WithCause(err)
	default:
		return err
	}
}
