package identity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingEmail       = errors.New("email is required")
	ErrInvalidEmail       = errors.New("please enter a valid email")
	ErrMissingPassword    = errors.New("password is required")
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrWrongPassword      = errors.New("incorrect password")
	ErrEmailExists        = errors.New("email already in use")
	ErrAuthFailed         = errors.New("authentication failed")
)

const (
	opSignIn = "signIn"
	opSignUp = "signUp"
	opReset  = "sendPasswordReset"
)

// ProviderError is a non-2xx answer from the identity provider. Code is the
// provider's error message, e.g. EMAIL_NOT_FOUND.
type ProviderError struct {
	Op         string
	Code       string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity %s: %s (status %d)", e.Op, e.Code, e.StatusCode)
}

// Unwrap maps the provider code to one of the package sentinel errors.
func (e *ProviderError) Unwrap() error {
	return classify(e.Op, e.Code)
}

// the provider sometimes appends a description: "TOO_MANY_ATTEMPTS_TRY_LATER : Access ..."
func errorCode(message string) string {
	code, _, _ := strings.Cut(message, " : ")
	return strings.TrimSpace(code)
}

func classify(op, code string) error {
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_EMAIL", "USER_DISABLED", "INVALID_LOGIN_CREDENTIALS":
		if op == opSignIn {
			return ErrEmailNotRegistered
		}
	case "INVALID_PASSWORD":
		if op == opSignIn {
			return ErrWrongPassword
		}
	case "EMAIL_EXISTS":
		return ErrEmailExists
	}
	return ErrAuthFailed
}

// UserMessage returns the text shown to the user for an error returned by
// this package.
func UserMessage(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		switch pe.Op {
		case opReset:
			if pe.Code == "" {
				return "Failed to send reset email."
			}
			return strings.ReplaceAll(pe.Code, "_", " ")
		case opSignUp:
			if errors.Is(pe, ErrEmailExists) {
				return "Email already in use."
			}
			if pe.Code == "" {
				return "Failed to sign up."
			}
			return pe.Code
		}
	}

	switch {
	case errors.Is(err, ErrMissingEmail):
		return "Email is required"
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid email"
	case errors.Is(err, ErrMissingPassword):
		return "Password is required"
	case errors.Is(err, ErrEmailNotRegistered):
		return "No account exists with that email."
	case errors.Is(err, ErrWrongPassword):
		return "The password you entered is not correct."
	case errors.Is(err, ErrEmailExists):
		return "Email already in use."
	}
	return "Wrong credential entered"
}
