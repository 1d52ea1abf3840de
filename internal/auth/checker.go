package auth

import "errors"

// IsUnauthorized reports whether err means the caller simply is not signed in,
// as opposed to the check itself failing.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired)
}
