package identity

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidEmail reports whether email looks like an address. The provider does
// the real validation.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateLogin checks the sign in form before anything is sent to the provider.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingEmail
	}
	if !ValidEmail(email) {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrMissingPassword
	}
	return nil
}
