package domain

import (
	"net/mail"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates such as targetGoLive.
const DateLayout = "2006-01-02"

// RequireText trims s and fails when nothing is left.
func RequireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", Required(field)
	}
	return s, nil
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(field, s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return Invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return nil
}

// ValidateEmail checks that s is a bare email address.
func ValidateEmail(field, s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return Invalid(field, "must be a valid email address")
	}
	return nil
}

// optionalDate trims a nullable date and validates it when non-empty. An
// empty string clears the value.
func optionalDate(field string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if err := ValidateDate(field, v); err != nil {
		return nil, err
	}
	return &v, nil
}

// optionalText trims a nullable string; blank becomes nil.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
