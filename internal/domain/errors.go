package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is usually wrapped by a *ValidationError carrying the details.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedCardType is returned when a type discriminant does not
	// name one of the known card types.
	ErrUnsupportedCardType = errors.New("unsupported card type")

	// ErrInvalidID is returned when a card ID is malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
