package model

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// AccountType is the role carried in a session claim.
type AccountType string

const (
	AccountTypeStudent    AccountType = "Student"
	AccountTypeInstructor AccountType = "Instructor"
	AccountTypeAdmin      AccountType = "Admin"
)

// Token verification failures. Verifiers wrap these so the gate can tell an
// expired token from a malformed one while keeping the library's error text.
var (
	ErrTokenExpired = errors.New("token is expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the decoded payload of a session token.
type Claims struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	AccountType AccountType `json:"accountType"`
	jwt.RegisteredClaims
}

// HasAccountType reports whether the claim's account type is exactly t.
// The comparison is case-sensitive.
func (c *Claims) HasAccountType(t AccountType) bool {
	return c.AccountType == t
}
