package utils

import (
	"errors"
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

var ErrInvalidUsername = errors.New("username must be 3-20 characters, letters, digits and underscore only")

// NormalizeUsername lowercases a username; all storage and uniqueness
// checks operate on the normalized form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks the raw (pre-normalization) form.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(strings.TrimSpace(username)) {
		return ErrInvalidUsername
	}
	return nil
}
