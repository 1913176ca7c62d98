package service

import (
	"fmt"
	"net/mail"
	"regexp"
	"unicode"
	"unicode/utf8"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)

func validateRegister(in RegisterInput) error {
	if !usernamePattern.MatchString(in.Username) {
		return fmt.Errorf("%w: username must be 3-32 characters of letters, digits, dot, underscore or hyphen", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: email must be valid", ErrValidation)
	}
	if err := validatePassword(in.Password); err != nil {
		return err
	}
	if utf8.RuneCountInString(in.DisplayName) > 64 {
		return fmt.Errorf("%w: display name must be at most 64 characters", ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain letters and digits", ErrValidation)
	}
	return nil
}
