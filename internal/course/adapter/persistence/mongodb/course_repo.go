package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course-platform/internal/course/domain/model"
	"course-platform/internal/shared/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CoursesCollection    = "courses"
	CategoriesCollection = "categories"
)

// MongoCourseRepository implements the course and category repositories
// using MongoDB
type MongoCourseRepository struct {
	courses    *mongo.Collection
	categories *mongo.Collection
}

// NewMongoCourseRepository creates a new MongoDB course repository
func NewMongoCourseRepository(db *mongo.Database) *MongoCourseRepository {
	return &MongoCourseRepository{
		courses:    db.Collection(CoursesCollection),
		categories: db.Collection(CategoriesCollection),
	}
}

// EnsureIndexes creates the unique category name index and the course
// instructor index
func (r *MongoCourseRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create categories name index: %w", err)
	}

	_, err = r.courses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "instructor", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create courses instructor index: %w", err)
	}
	return nil
}

// CreateCourse inserts course and sets its ID
func (r *MongoCourseRepository) CreateCourse(ctx context.Context, course *model.Course) error {
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	result, err := r.courses.InsertOne(ctx, course)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}
	course.ID = database.HexID(result.InsertedID)
	return nil
}

// ListCourses returns every course, newest first
func (r *MongoCourseRepository) ListCourses(ctx context.Context) ([]*model.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.courses.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	courses := make([]*model.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}

// GetCoursesByIDs returns the courses whose ids are listed. Unknown ids are
// skipped.
func (r *MongoCourseRepository) GetCoursesByIDs(ctx context.Context, ids []string) ([]*model.Course, error) {
	courses := make([]*model.Course, 0, len(ids))
	if len(ids) == 0 {
		return courses, nil
	}
	cursor, err := r.courses.Find(ctx, database.IDsFilter(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find courses: %w", err)
	}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}

// CreateCategory inserts category and sets its ID
func (r *MongoCourseRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	if category.Courses == nil {
		category.Courses = []string{}
	}
	result, err := r.categories.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrCategoryExists
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	category.ID = database.HexID(result.InsertedID)
	return nil
}

// ListCategories returns every category sorted by name
func (r *MongoCourseRepository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories := make([]*model.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (r *MongoCourseRepository) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.categories.FindOne(ctx, database.IDFilter(id)).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// AddCourse appends courseID to the category's course list
func (r *MongoCourseRepository) AddCourse(ctx context.Context, categoryID, courseID string) error {
	result, err := r.categories.UpdateOne(ctx, database.IDFilter(categoryID),
		bson.M{"$addToSet": bson.M{"courses": courseID}})
	if err != nil {
		return fmt.Errorf("failed to link course to category: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}
