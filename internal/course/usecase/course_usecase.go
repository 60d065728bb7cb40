package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"course-platform/internal/course/domain/model"
	"course-platform/internal/course/domain/repository"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/media"
)

// ThumbnailFolder is where course thumbnails are stored on the media host
const ThumbnailFolder = "courses"

var ErrMissingFields = errors.New("all fields are mandatory")

// CourseUsecaseInterface defines the contract for course use cases.
type CourseUsecaseInterface interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateCourse(ctx context.Context, instructorID string, req CreateCourseRequest, thumbnailPath string) (*model.Course, error)
	ListCourses(ctx context.Context) ([]*model.Course, error)
}

// CreateCategoryRequest is the body of a category creation
type CreateCategoryRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

// CreateCourseRequest holds the form fields of a course creation
type CreateCourseRequest struct {
	CourseName        string
	CourseDescription string
	WhatYouWillLearn  string
	Price             float64
	Tag               []string
	Category          string
	Status            model.CourseStatus
	Instructions      []string
}

// CourseUsecase implements course and category management.
type CourseUsecase struct {
	courses    repository.CourseRepository
	categories repository.CategoryRepository
	media      media.Uploader
	log        logger.Logger
}

// NewCourseUsecase creates a new instance of CourseUsecase.
func NewCourseUsecase(courses repository.CourseRepository, categories repository.CategoryRepository, uploader media.Uploader, log logger.Logger) *CourseUsecase {
	return &CourseUsecase{
		courses:    courses,
		categories: categories,
		media:      uploader,
		log:        log.WithComponent("course"),
	}
}

// CreateCategory adds a new category
func (uc *CourseUsecase) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrMissingFields
	}
	category := &model.Category{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := uc.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns every category
func (uc *CourseUsecase) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return uc.categories.ListCategories(ctx)
}

// ListCourses returns every course
func (uc *CourseUsecase) ListCourses(ctx context.Context) ([]*model.Course, error) {
	return uc.courses.ListCourses(ctx)
}

// CreateCourse uploads the thumbnail, stores the course and links it to its
// category. The uploaded thumbnail is removed again if the course cannot be
// stored. A failed category link is logged and the stored course returned.
func (uc *CourseUsecase) CreateCourse(ctx context.Context, instructorID string, req CreateCourseRequest, thumbnailPath string) (*model.Course, error) {
	if instructorID == "" || strings.TrimSpace(req.CourseName) == "" || strings.TrimSpace(req.CourseDescription) == "" ||
		strings.TrimSpace(req.WhatYouWillLearn) == "" || !validPrice(req.Price) || req.Category == "" || thumbnailPath == "" {
		return nil, ErrMissingFields
	}

	if _, err := uc.categories.GetCategoryByID(ctx, req.Category); err != nil {
		return nil, err
	}

	asset, err := uc.media.Upload(ctx, thumbnailPath, ThumbnailFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	status := req.Status
	if status != model.CourseStatusPublished {
		status = model.CourseStatusDraft
	}

	course := &model.Course{
		CourseName:        strings.TrimSpace(req.CourseName),
		CourseDescription: strings.TrimSpace(req.CourseDescription),
		Instructor:        instructorID,
		WhatYouWillLearn:  strings.TrimSpace(req.WhatYouWillLearn),
		Price:             req.Price,
		Tag:               nonNil(req.Tag),
		Category:          req.Category,
		Thumbnail:         asset.URL,
		Status:            status,
		Instructions:      nonNil(req.Instructions),
	}

	if err := uc.courses.CreateCourse(ctx, course); err != nil {
		if delErr := uc.media.Delete(ctx, asset.Key); delErr != nil {
			uc.log.WithContext(ctx).Warnf("failed to remove orphaned thumbnail %s: %v", asset.Key, delErr)
		}
		return nil, err
	}

	// The course is already stored; a missing category link only hides it
	// from the category listing.
	if err := uc.categories.AddCourse(ctx, req.Category, course.ID); err != nil {
		uc.log.WithContext(ctx).Warnf("failed to link course %s to category %s: %v", course.ID, req.Category, err)
	}

	return course, nil
}

// validPrice rejects non-positive and non-finite prices. NaN and Inf cannot
// be encoded as JSON.
func validPrice(price float64) bool {
	return price > 0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
