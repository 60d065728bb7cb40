package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course-platform/internal/auth/domain/model"
	"course-platform/internal/auth/domain/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("all fields are required")
	ErrUserNotRegistered  = errors.New("user is not registered")
	ErrInvalidCredentials = errors.New("password is incorrect")
)

// AuthUsecaseInterface defines the contract for authentication use cases.
type AuthUsecaseInterface interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthResponse is returned on successful login
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthUsecase implements the authentication logic.
type AuthUsecase struct {
	repo     repository.UserRepository
	tokenSvc repository.TokenService
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(repo repository.UserRepository, tokenSvc repository.TokenService) *AuthUsecase {
	return &AuthUsecase{
		repo:     repo,
		tokenSvc: tokenSvc,
	}
}

// Login checks the password of a registered user and issues a session token.
func (uc *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// GetUserByID returns the account behind an authenticated claim.
func (uc *AuthUsecase) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, model.ErrUserNotFound
	}
	return uc.repo.GetUserByID(ctx, userID)
}
