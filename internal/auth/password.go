package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the given cost
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a bcrypt hash.
// bcrypt's comparison is constant-time.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Password strength rules, reported by CheckPasswordStrength
const (
	RuleMinLength = "min_length"
	RuleUppercase = "uppercase"
	RuleLowercase = "lowercase"
	RuleDigit     = "digit"
)

// CheckPasswordStrength returns the list of violated rules for a
// candidate password. An empty list means the password passes.
func CheckPasswordStrength(password string) []string {
	var violations []string

	if len(password) < 8 {
		violations = append(violations, RuleMinLength)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		violations = append(violations, RuleUppercase)
	}
	if !lower {
		violations = append(violations, RuleLowercase)
	}
	if !digit {
		violations = append(violations, RuleDigit)
	}

	return violations
}
