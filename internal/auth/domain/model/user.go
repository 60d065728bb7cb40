package model

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// User is a registered account as stored in the users collection.
type User struct {
	ID           string      `json:"_id" bson:"_id"`
	FirstName    string      `json:"firstName" bson:"firstName"`
	LastName     string      `json:"lastName" bson:"lastName"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"-" bson:"password"`
	AccountType  AccountType `json:"accountType" bson:"accountType"`
	Active       bool        `json:"active" bson:"active"`
	Approved     bool        `json:"approved" bson:"approved"`
	Image        string      `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"`
}
