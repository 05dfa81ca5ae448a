package parking

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone accepts Brazilian landline (10 digits) and mobile
// (11 digits) numbers, ignoring punctuation.
func ValidPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '(' || r == ')' || r == '-' || r == ' ' || r == '+':
		default:
			return false
		}
	}
	return digits == 10 || digits == 11
}

// FormatPhone renders a phone number with the customary punctuation.
func FormatPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	p := b.String()
	switch len(p) {
	case 11:
		return "(" + p[:2] + ") " + p[2:7] + "-" + p[7:]
	case 10:
		return "(" + p[:2] + ") " + p[2:6] + "-" + p[6:]
	}
	return s
}

// ValidDate reports whether s is a valid YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidMonth reports whether s is a valid YYYY-MM month.
func ValidMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}
