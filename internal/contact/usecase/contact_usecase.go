package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"course-platform/internal/contact/domain/model"
)

var (
	ErrMissingFields = errors.New("email and message are required")
	ErrInvalidEmail  = errors.New("email address is invalid")
)

// ContactRepository persists contact messages
type ContactRepository interface {
	SaveMessage(ctx context.Context, msg *model.ContactMessage) error
}

// ContactUsecase validates and stores contact form submissions.
type ContactUsecase struct {
	repo ContactRepository
}

// NewContactUsecase creates a new instance of ContactUsecase.
func NewContactUsecase(repo ContactRepository) *ContactUsecase {
	return &ContactUsecase{repo: repo}
}

// Submit stores a contact message
func (uc *ContactUsecase) Submit(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	msg.FirstName = strings.TrimSpace(msg.FirstName)
	msg.LastName = strings.TrimSpace(msg.LastName)
	msg.ID = ""

	if msg.Email == "" || msg.Message == "" {
		return nil, ErrMissingFields
	}
	addr, err := mail.ParseAddress(msg.Email)
	if err != nil {
		return nil, ErrInvalidEmail
	}
	// Display names such as "Ada <ada@example.com>" are dropped.
	msg.Email = addr.Address

	if err := uc.repo.SaveMessage(ctx, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
