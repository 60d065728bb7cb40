package repository

import (
	"context"

	"course-platform/internal/course/domain/model"
)

// CourseRepository defines the data operations on courses
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *model.Course) error
	ListCourses(ctx context.Context) ([]*model.Course, error)
	GetCoursesByIDs(ctx context.Context, ids []string) ([]*model.Course, error)
}

// CategoryRepository defines the data operations on categories
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	AddCourse(ctx context.Context, categoryID, courseID string) error
}
