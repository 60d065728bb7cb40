package usecase

import (
	"context"
	"fmt"
	"math"

	coursemodel "course-platform/internal/course/domain/model"
	"course-platform/internal/payment/domain/model"
	"course-platform/internal/payment/domain/repository"

	"github.com/google/uuid"
)

// CourseCatalog resolves the courses an order refers to
type CourseCatalog interface {
	GetCoursesByIDs(ctx context.Context, ids []string) ([]*coursemodel.Course, error)
}

// PaymentUsecaseInterface defines the contract for payment use cases.
type PaymentUsecaseInterface interface {
	CapturePayment(ctx context.Context, userID string, courseIDs []string) (*model.Order, error)
}

// CapturePaymentRequest is the body of a capture call
type CapturePaymentRequest struct {
	Courses []string `json:"courses"`
}

// PaymentUsecase records orders. Settlement with a payment provider is
// out of scope; orders stay in the created state.
type PaymentUsecase struct {
	orders  repository.OrderRepository
	catalog CourseCatalog
	receipt func() string
}

// NewPaymentUsecase creates a new instance of PaymentUsecase.
func NewPaymentUsecase(orders repository.OrderRepository, catalog CourseCatalog) *PaymentUsecase {
	return &PaymentUsecase{
		orders:  orders,
		catalog: catalog,
		receipt: uuid.NewString,
	}
}

// CapturePayment validates the requested courses and records an order for
// their total price
func (uc *PaymentUsecase) CapturePayment(ctx context.Context, userID string, courseIDs []string) (*model.Order, error) {
	ids := dedupe(courseIDs)
	if len(ids) == 0 {
		return nil, model.ErrNoCourses
	}

	courses, err := uc.catalog.GetCoursesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up courses: %w", err)
	}
	if len(courses) != len(ids) {
		return nil, model.ErrCourseNotFound
	}

	total := 0.0
	for _, c := range courses {
		total += c.Price
	}

	order := &model.Order{
		UserID:   userID,
		Courses:  ids,
		Amount:   math.Round(total*100) / 100,
		Currency: model.DefaultCurrency,
		Receipt:  uc.receipt(),
		Status:   model.OrderStatusCreated,
	}
	if err := uc.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
