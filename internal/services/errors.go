package services

import "errors"

// Request-visible failures. None of these is fatal; handlers translate
// them into a rendered message or status code, one-shot per request.
var (
	// ErrStageClosed means the action was attempted outside its permitted stage
	ErrStageClosed = errors.New("stage closed for this action")

	// ErrNoConfig means no award configuration row exists; gating fails closed
	ErrNoConfig = errors.New("award configuration missing")

	// ErrLimitExceeded means a per-user submission cap was reached
	ErrLimitExceeded = errors.New("submission limit exceeded")

	// ErrTokenNotFound means no jury token matches the presented identifier
	ErrTokenNotFound = errors.New("jury token not found")

	// ErrTokenExpiredOrUsed means the jury token exists but is no longer redeemable
	ErrTokenExpiredOrUsed = errors.New("jury token expired or already used")

	// ErrNotFound means a referenced category or nominee does not exist
	ErrNotFound = errors.New("not found")
)
