// Package errors contains domain-specific errors for the subscription domain
package errors

import (
	pkgerrors "github.com/Conte777/MinaAlerts/pkg/errors"
)

// Key validation errors
var (
	ErrBadLength     = pkgerrors.NewValidationError("public key must be exactly 55 characters long")
	ErrBadCharacters = pkgerrors.NewValidationError("public key must contain only letters and digits")
	ErrBadPrefix     = pkgerrors.NewValidationError("public key must start with B62")
	ErrReservedWord  = pkgerrors.NewValidationError("public key contains a reserved word")
)

// Request validation errors
var (
	ErrUnknownCategory  = pkgerrors.NewValidationError("unknown category, use blocks or transactions")
	ErrMalformedRequest = pkgerrors.NewValidationError("malformed request")
)

// Subscription state errors
var (
	ErrAlreadySubscribed    = pkgerrors.NewConflictError("already subscribed")
	ErrNotSubscribed        = pkgerrors.NewNotFoundError("not subscribed")
	ErrNothingToUnsubscribe = pkgerrors.NewNotFoundError("no subscriptions to remove")
	ErrQuotaExceeded        = pkgerrors.NewLimitError("subscription limit reached")
)

// Store errors
var (
	ErrStoreUnavailable      = pkgerrors.NewUnavailableError("subscription store unavailable")
	ErrQueryFailed           = pkgerrors.NewInternalError("subscription store query failed")
	ErrDuplicateSubscription = pkgerrors.NewConflictError("duplicate subscription row")
	ErrEventPublish          = pkgerrors.NewInternalError("subscription event publish failed")
)
