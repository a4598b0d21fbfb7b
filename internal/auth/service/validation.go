package service

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// RegisterInput is the already-parsed registration form record; the shell
// does the parsing, the core owns shape validation.
type RegisterInput struct {
	Username string `validate:"required,max=32"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,max=72"`
}

type LoginInput struct {
	Username string `validate:"required,max=32"`
	Password string `validate:"required,max=72"`
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func (s *AuthService) validateRegisterInput(input RegisterInput) error {
	if err := s.validate.Struct(input); err != nil {
		return ErrValidation.WithCause(err)
	}
	if !isValidUsername(input.Username) {
		return ErrValidation
	}
	return nil
}

func (s *AuthService) validateLoginInput(input LoginInput) error {
	if err := s.validate.Struct(input); err != nil {
		return ErrValidation.WithCause(err)
	}
	return nil
}

func isValidUsername(value string) bool {
	if !usernameRegex.MatchString(value) {
		return false
	}

	first := rune(value[0])
	last := rune(value[len(value)-1])
	if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
		return false
	}
	if !unicode.IsLetter(last) && !unicode.IsDigit(last) {
		return false
	}

	return true
}
