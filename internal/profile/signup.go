package profile

import (
	"sort"
	"strings"

	"github.com/2beens/fitforge/internal/identity"
)

const (
	minPasswordLength = 6
	minAge            = 13
	maxAge            = 100
)

// SignUpForm is what a new user fills in. Email and password go to the
// identity provider, the rest becomes the User record.
type SignUpForm struct {
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Password        string    `json:"password"`
	ConfirmPassword string    `json:"confirmPassword"`
	Age             FormValue `json:"age"`
	Gender          string    `json:"gender"`
}

// FieldErrors maps form fields to the message shown next to them.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+fe[f])
	}
	return "invalid sign up form: " + strings.Join(msgs, "; ")
}

// Validate checks every field and returns all problems at once, or nil.
func (f SignUpForm) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(f.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}

	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !identity.ValidEmail(f.Email) {
		errs["email"] = "Please enter a valid email"
	}

	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if len(f.Password) < minPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	}
	if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}

	if age, err := f.Age.Float(); f.Age.Empty() || err != nil {
		errs["age"] = "Age is required"
	} else if age < minAge || age > maxAge {
		errs["age"] = "Please enter a valid age (13-100)"
	}

	switch strings.ToLower(f.Gender) {
	case GenderMale, GenderFemale:
	default:
		errs["gender"] = "Please select your gender"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// User returns the record stored for a validated form.
func (f SignUpForm) User() User {
	age, _ := f.Age.Float()
	return User{
		FullName: strings.TrimSpace(f.FullName),
		Age:      int(age),
		Gender:   strings.ToLower(f.Gender),
	}
}
