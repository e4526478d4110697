package services

import "errors"

// Domain errors surfaced by the services. Controllers map these onto HTTP
// statuses with errors.Is.
var (
	// Verification
	ErrInvalidDomain = errors.New("email domain not allowed")
	ErrEmailSend     = errors.New("failed to send email")
	ErrNoPendingCode = errors.New("no pending verification code")
	ErrCodeExpired   = errors.New("verification code expired")
	ErrCodeMismatch  = errors.New("invalid verification code")

	// Users and matching
	ErrUserNotFound   = errors.New("user not found")
	ErrSelfMatch      = errors.New("cannot match a user with themselves")
	ErrAlreadyMatched = errors.New("user already matched")
	ErrIntroTooShort  = errors.New("introduction too short")

	// Messaging
	ErrNotMatched      = errors.New("user is not matched")
	ErrMessageTooShort = errors.New("message too short")
)
