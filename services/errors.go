package services

import "errors"

// Caller-visible error kinds. Controllers map these to HTTP statuses;
// anything else is logged and surfaced as an opaque internal error.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateDate = errors.New("record already exists for this date")
	ErrDuplicate     = errors.New("record already exists")
	ErrLimitReached  = errors.New("daily generation limit reached")

	// Credential-validation failures. All of them collapse to a uniform
	// 401 at the boundary; the distinction exists for logs and tests only.
	ErrNoToken          = errors.New("no bearer token")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrKeyResolution    = errors.New("unable to resolve signing key")
	ErrUserResolution   = errors.New("unable to resolve user identity")
)
