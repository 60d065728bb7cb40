package testutil

import (
	"time"

	"course-platform/internal/auth/domain/model"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plain-text password of every fixture user.
const DefaultPassword = "password123"

// UserFixture provides test data for User model
type UserFixture struct{}

// NewUserFixture creates a new UserFixture instance
func NewUserFixture() *UserFixture {
	return &UserFixture{}
}

// UserWithType returns an active user of the given account type
func (f *UserFixture) UserWithType(accountType model.AccountType) *model.User {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	now := time.Now()
	return &model.User{
		ID:           "64b7f0c2a1b2c3d4e5f60718",
		FirstName:    "Test",
		LastName:     string(accountType),
		Email:        "test@example.com",
		PasswordHash: string(hashedPassword),
		AccountType:  accountType,
		Active:       true,
		Approved:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Student returns a student user
func (f *UserFixture) Student() *model.User { return f.UserWithType(model.AccountTypeStudent) }

// Instructor returns an instructor user
func (f *UserFixture) Instructor() *model.User { return f.UserWithType(model.AccountTypeInstructor) }

// Admin returns an admin user
func (f *UserFixture) Admin() *model.User { return f.UserWithType(model.AccountTypeAdmin) }
