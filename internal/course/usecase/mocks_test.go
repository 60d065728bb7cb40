package usecase_test

import (
	"context"

	"course-platform/internal/course/domain/model"
	"course-platform/internal/shared/media"

	"github.com/stretchr/testify/mock"
)

type mockCourseRepository struct {
	mock.Mock
}

func (m *mockCourseRepository) CreateCourse(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *mockCourseRepository) ListCourses(ctx context.Context) ([]*model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Course), args.Error(1)
}

func (m *mockCourseRepository) GetCoursesByIDs(ctx context.Context, ids []string) ([]*model.Course, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Course), args.Error(1)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *mockCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockCategoryRepository) AddCourse(ctx context.Context, categoryID, courseID string) error {
	args := m.Called(ctx, categoryID, courseID)
	return args.Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, localPath, folder string) (*media.Asset, error) {
	args := m.Called(ctx, localPath, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Asset), args.Error(1)
}

func (m *mockUploader) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
