package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

// FieldError describes an invalid form field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// UserMessage lets the CLI print the error without the wrapping context.
func (e *FieldError) UserMessage() string {
	return e.Error()
}

// HabitTitle checks a (trimmed) habit title
func HabitTitle(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return &FieldError{Field: "title", Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(s) > constants.MaxHabitTitleLen {
		return &FieldError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", constants.MaxHabitTitleLen)}
	}
	return nil
}

// HabitDescription checks a (trimmed) habit description. Empty is allowed.
func HabitDescription(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > constants.MaxHabitDescriptionLen {
		return &FieldError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", constants.MaxHabitDescriptionLen)}
	}
	return nil
}

// HabitInput trims and validates a create/update payload
func HabitInput(title, description string) (models.HabitInput, error) {
	if err := HabitTitle(title); err != nil {
		return models.HabitInput{}, err
	}
	if err := HabitDescription(description); err != nil {
		return models.HabitInput{}, err
	}
	return models.HabitInput{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}, nil
}

// Name checks a display name for registration
func Name(s string) error {
	if strings.TrimSpace(s) == "" {
		return &FieldError{Field: "name", Message: "cannot be empty"}
	}
	return nil
}

// Email checks that s is a bare email address
func Email(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return &FieldError{Field: "email", Message: "cannot be empty"}
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return &FieldError{Field: "email", Message: "is not a valid address"}
	}
	return nil
}

// Password checks the minimum password length. Passwords are never trimmed.
func Password(s string) error {
	if utf8.RuneCountInString(s) < constants.MinPasswordLen {
		return &FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", constants.MinPasswordLen)}
	}
	return nil
}
