package ads

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNoImages          = errors.New("upload at least one photo")
	ErrMissingFields     = errors.New("title, description and email are required")
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrRightsNotAccepted = errors.New("the image rights declaration must be accepted")
	ErrTermsNotAccepted  = errors.New("the terms of service must be accepted")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is the state of one ad submission interaction.
type Form struct {
	Images         []File
	Title          string
	Description    string
	Email          string
	RightsAccepted bool
	TermsAccepted  bool
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks the form in a fixed order and returns the first failing
// rule.
func (f *Form) Validate() error {
	if len(f.Images) == 0 {
		return ErrNoImages
	}
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Description) == "" || strings.TrimSpace(f.Email) == "" {
		return ErrMissingFields
	}
	if !ValidEmail(strings.TrimSpace(f.Email)) {
		return ErrInvalidEmail
	}
	if !f.RightsAccepted {
		return ErrRightsNotAccepted
	}
	if !f.TermsAccepted {
		return ErrTermsNotAccepted
	}
	return nil
}

// Reset clears the form. A signed-in user's email is kept.
func (f *Form) Reset(sess Session) {
	*f = Form{Email: sess.Email}
}

// ValidationReason maps a validation error to a stable machine readable code.
func ValidationReason(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrNoImages):
		return "no_images", true
	case errors.Is(err, ErrMissingFields):
		return "missing_fields", true
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email", true
	case errors.Is(err, ErrRightsNotAccepted):
		return "rights_not_accepted", true
	case errors.Is(err, ErrTermsNotAccepted):
		return "terms_not_accepted", true
	case errors.Is(err, ErrTooManyFiles):
		return "too_many_files", true
	}
	return "", false
}
