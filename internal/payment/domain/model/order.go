package model

import (
	"errors"
	"time"
)

var (
	ErrNoCourses      = errors.New("no course ids provided")
	ErrCourseNotFound = errors.New("one or more courses do not exist")
)

// OrderStatus tracks an order through payment
type OrderStatus string

const OrderStatusCreated OrderStatus = "created"

// DefaultCurrency is used for every order
const DefaultCurrency = "INR"

// Order records a student's intent to buy courses
type Order struct {
	ID        string      `json:"_id" bson:"_id,omitempty"`
	UserID    string      `json:"userId" bson:"userId"`
	Courses   []string    `json:"courses" bson:"courses"`
	Amount    float64     `json:"amount" bson:"amount"`
	Currency  string      `json:"currency" bson:"currency"`
	Receipt   string      `json:"receipt" bson:"receipt"`
	Status    OrderStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}
