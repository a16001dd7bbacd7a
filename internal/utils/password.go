package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the registration password floor.
const MinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidEmail is a shallow shape check; deliverability is the mail
// server's problem.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
