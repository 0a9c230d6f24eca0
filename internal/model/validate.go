package model

import (
	"fmt"
	"strings"
)

// maxBodyRunes caps comment body length, counted in runes.
const maxBodyRunes = 10000

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func validateBody(body string, ve *ValidationError) {
	if strings.TrimSpace(body) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "body", Message: "is required"})
	} else if len([]rune(body)) > maxBodyRunes {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "body",
			Message: fmt.Sprintf("must be %d characters or fewer", maxBodyRunes),
		})
	}
}

// ValidateComment checks a Comment for constraint violations before insert.
// It returns a *ValidationError if any rules fail, or nil if the comment is valid.
func ValidateComment(c *Comment) error {
	var ve ValidationError

	validateBody(c.Body, &ve)

	if strings.TrimSpace(c.PostID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "postId", Message: "is required"})
	}

	if strings.TrimSpace(c.UserID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "userId", Message: "is required"})
	}

	if c.ParentID != nil && strings.TrimSpace(*c.ParentID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "parentId", Message: "must not be empty when set"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateCommentBody checks a replacement body on its own, for edits.
func ValidateCommentBody(body string) error {
	var ve ValidationError
	validateBody(body, &ve)
	if ve.HasErrors() {
		return &ve
	}
	return nil
}
