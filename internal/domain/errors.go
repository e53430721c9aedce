package domain

import "errors"

// Store errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicateKey = errors.New("duplicate value for unique field")
)

// Authentication errors
var (
	ErrInvalidNonce     = errors.New("invalid nonce")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrWalletRegistered = errors.New("wallet address already registered")
)

// Authorization and validation errors
var (
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUsernameTooLong    = errors.New("username cannot exceed 30 characters")
	ErrDisplayNameTooLong = errors.New("display name cannot exceed 50 characters")
	ErrBioTooLong         = errors.New("bio cannot exceed 500 characters")
)
