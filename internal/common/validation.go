package common

import (
	"regexp"
	"strings"
	"unicode"

	"courier/pkg/apperr"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return apperr.InvalidArg("username must be between 3 and 50 characters")
	}

	if !usernameRegex.MatchString(username) {
		return apperr.InvalidArg("username can only contain letters, numbers, and underscores")
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperr.InvalidArg("password must be at least 8 characters long")
	}
	if len(password) > 100 {
		return apperr.InvalidArg("password is too long")
	}

	var hasDigit, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit {
		return apperr.InvalidArg("password must contain at least one digit")
	}
	if !hasUpper {
		return apperr.InvalidArg("password must contain at least one uppercase letter")
	}

	return nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 100 {
		return apperr.InvalidArg("invalid email")
	}

	if !emailRegex.MatchString(email) {
		return apperr.InvalidArg("invalid email format")
	}

	return nil
}
