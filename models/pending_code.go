package models

import "time"

// PendingCode is a short-lived one-time verification code tied to an email.
// At most one live code exists per email; requesting a new code overwrites it.
type PendingCode struct {
	Code     string    `dynamodbav:"code" json:"code"`
	IssuedAt time.Time `dynamodbav:"issuedAt" json:"issuedAt"`
}
