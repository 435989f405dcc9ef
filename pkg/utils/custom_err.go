package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrUnauthorized      = errors.New("authentication required")
	ErrUsageLimitReached = errors.New("usage limit reached")

	ErrInvalidVideoURL = errors.New("invalid video url")
	ErrNoTranscript    = errors.New("no transcript available")
	ErrUpstreamFailure = errors.New("upstream provider failure")

	ErrInvalidTier  = errors.New("invalid tier value")
	ErrInvalidStyle = errors.New("invalid writing style")
	ErrPlanNotFound = errors.New("plan not found")

	ErrDatabaseError = errors.New("database error")
	RecordNotFound   = errors.New("record not found")
)
