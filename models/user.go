package models

import "time"

// User defines a verified penpal account, keyed by normalized email
type User struct {
	Email        string     `dynamodbav:"email" json:"email"`
	Intro        string     `dynamodbav:"intro" json:"intro"`
	Matched      bool       `dynamodbav:"matched" json:"matched"`
	PartnerEmail string     `dynamodbav:"partnerEmail,omitempty" json:"partnerEmail,omitempty"`
	CreatedAt    time.Time  `dynamodbav:"createdAt" json:"createdAt"`
	LastLogin    *time.Time `dynamodbav:"lastLogin,omitempty" json:"lastLogin,omitempty"`
}
