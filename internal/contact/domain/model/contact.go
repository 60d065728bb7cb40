package model

import "time"

// ContactMessage is a message left through the contact form
type ContactMessage struct {
	ID          string    `json:"_id" bson:"_id,omitempty"`
	Email       string    `json:"email" bson:"email" form:"email"`
	FirstName   string    `json:"firstname" bson:"firstName" form:"firstname"`
	LastName    string    `json:"lastname" bson:"lastName" form:"lastname"`
	Message     string    `json:"message" bson:"message" form:"message"`
	PhoneNo     string    `json:"phoneNo" bson:"phoneNo" form:"phoneNo"`
	CountryCode string    `json:"countrycode" bson:"countryCode" form:"countrycode"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
