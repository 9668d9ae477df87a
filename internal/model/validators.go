package model

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError describes a single invalid field
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field validation errors
type ValidationErrors []ValidationError

// Error returns the combined error message
func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// HasErrors reports whether any validation error was collected
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ValidateRequired checks that a string field is not empty
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// ValidateURL checks that a field contains an absolute URL
func ValidateURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return ValidationError{Field: field, Message: "invalid URL"}
	}
	return nil
}
