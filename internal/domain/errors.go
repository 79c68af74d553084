package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters with uppercase, lowercase and a digit")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrMassNotFound = errors.New("mass not found")
	ErrNoSlots      = errors.New("no available slots")

	ErrNotFound    = errors.New("not found")
	ErrNotOwner    = errors.New("not the owner of this resource")
	ErrForbidden   = errors.New("insufficient role")
	ErrNoSession   = errors.New("no session")
	ErrAlreadyPaid = errors.New("payment already completed")

	ErrBadSignature = errors.New("invalid webhook signature")
)
