// Package validate provides stateless validation for candidate records:
// email/phone format checks and duplicate detection against an existing
// candidate set. Empty email and phone are always acceptable; a candidate
// can be captured from a single business card with nothing but a name.
package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Camblonie/recruiting-tracker/internal/model"
)

var (
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidPhoneNumber   = errors.New("invalid phone number")
	ErrDuplicateCandidate   = errors.New("duplicate candidate")
	ErrMissingRequiredField = errors.New("missing required field")
)

// emailRegex accepts the usual local@domain.tld shape. It is deliberately
// loose; the goal is catching typos like "jane@", not full RFC 5322.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Candidate checks the candidate's email and phone formats.
// Empty values pass; a name is not required either.
func Candidate(c *model.Candidate) error {
	if c.Email != "" && !emailRegex.MatchString(c.Email) {
		return ErrInvalidEmail
	}
	if c.Phone != "" && len(DigitsOnly(c.Phone)) != 10 {
		return ErrInvalidPhoneNumber
	}
	return nil
}

// DigitsOnly strips everything but ASCII digits from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsDuplicate reports whether any existing candidate matches the given name
// (case-insensitive) or phone (exact, digits compared as stored). Empty name
// or phone never match. The scan is linear over the full set, which is fine
// at the data volumes this tool handles.
func IsDuplicate(name, phone string, existing []*model.Candidate) bool {
	for _, c := range existing {
		if phone != "" && c.Phone == phone {
			return true
		}
		if name != "" && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// CheckForDuplicates returns ErrDuplicateCandidate if the candidate collides
// with an existing record by name or phone.
func CheckForDuplicates(c *model.Candidate, existing []*model.Candidate) error {
	if IsDuplicate(c.Name, c.Phone, existing) {
		return ErrDuplicateCandidate
	}
	return nil
}
