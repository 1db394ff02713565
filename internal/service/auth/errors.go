package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMissingSubject indicates a well-formed token without a subject claim
	ErrMissingSubject = fmt.Errorf("%w: missing subject", ErrInvalidToken)

	// ErrUnknownSubject indicates the token subject matches no registered user
	ErrUnknownSubject = fmt.Errorf("%w: unknown subject", ErrInvalidToken)
)

// IsAuthenticationError reports whether err should be answered with 401.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrTokenNotYetValid) ||
		errors.Is(err, ErrMissingToken)
}
