package model

import (
	"strings"
	"testing"
)

// validComment returns a Comment that passes all validation rules.
func validComment() Comment {
	return Comment{
		PostID: "post-1",
		UserID: "user-1",
		Body:   "Looks good to me.",
	}
}

// fieldErrors extracts a *ValidationError from err or fails the test.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve.Errors
}

// hasFieldError reports whether the error list contains an error for the given field.
func hasFieldError(errs []FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestValidate_BodyRequired(t *testing.T) {
	c := validComment()
	c.Body = ""
	errs := fieldErrors(t, ValidateComment(&c))
	if !hasFieldError(errs, "body") {
		t.Error("expected error on field 'body' for empty body")
	}
}

func TestValidate_BodyWhitespaceOnly(t *testing.T) {
	c := validComment()
	c.Body = "   \t\n  "
	errs := fieldErrors(t, ValidateComment(&c))
	if !hasFieldError(errs, "body") {
		t.Error("expected error on field 'body' for whitespace-only body")
	}
}

func TestValidate_BodyTooLong(t *testing.T) {
	c := validComment()
	c.Body = strings.Repeat("a", 10001)
	errs := fieldErrors(t, ValidateComment(&c))
	if !hasFieldError(errs, "body") {
		t.Error("expected error on field 'body' for body exceeding 10000 chars")
	}
}

func TestValidate_BodyExactly10000(t *testing.T) {
	c := validComment()
	c.Body = strings.Repeat("a", 10000)
	if err := ValidateComment(&c); err != nil {
		t.Errorf("body with exactly 10000 chars should be valid, got: %v", err)
	}
}

func TestValidate_BodyMultibyteRunesCounted(t *testing.T) {
	c := validComment()
	c.Body = strings.Repeat("世", 10000)
	if err := ValidateComment(&c); err != nil {
		t.Errorf("10000 multibyte runes should be valid, got: %v", err)
	}
	c.Body = strings.Repeat("世", 10001)
	errs := fieldErrors(t, ValidateComment(&c))
	if !hasFieldError(errs, "body") {
		t.Error("expected error on field 'body' for 10001 runes")
	}
}

func TestValidate_PostIDRequired(t *testing.T) {
	c := validComment()
	c.PostID = ""
	errs := fieldErrors(t, ValidateComment(&c))
	if !hasFieldError(errs, "postId") {
		t.Error("expected error on field 'postId' for empty postId")
	}
}

func TestValidate_UserIDRequired(t *testing.T) {
	c := validComment()
	c.UserID = ""
	errs := fieldErrors(t, ValidateComment(&c))
	if !hasFieldError(errs, "userId") {
		t.Error("expected error on field 'userId' for empty userId")
	}
}

func TestValidate_EmptyParentIDRejected(t *testing.T) {
	c := validComment()
	empty := "  "
	c.ParentID = &empty
	errs := fieldErrors(t, ValidateComment(&c))
	if !hasFieldError(errs, "parentId") {
		t.Error("expected error on field 'parentId' for blank parent reference")
	}
}

func TestValidate_NilParentIDValid(t *testing.T) {
	c := validComment()
	c.ParentID = nil
	if err := ValidateComment(&c); err != nil {
		t.Errorf("top-level comment should be valid, got: %v", err)
	}
}

func TestValidate_FullyValidComment(t *testing.T) {
	c := validComment()
	parent := "cm-parent"
	c.ParentID = &parent
	if err := ValidateComment(&c); err != nil {
		t.Errorf("expected no error for a fully valid comment, got: %v", err)
	}
}

func TestValidateCommentBody_Empty(t *testing.T) {
	errs := fieldErrors(t, ValidateCommentBody(""))
	if !hasFieldError(errs, "body") {
		t.Error("expected error on field 'body' for empty body")
	}
}

func TestValidateCommentBody_Valid(t *testing.T) {
	if err := ValidateCommentBody("still fine"); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	ve := &ValidationError{
		Errors: []FieldError{
			{Field: "body", Message: "is required"},
			{Field: "postId", Message: "is required"},
		},
	}
	got := ve.Error()
	want := "validation failed: body: is required; postId: is required"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := &ValidationError{}
	if ve.HasErrors() {
		t.Error("HasErrors() should be false for empty Errors slice")
	}
	ve.Errors = append(ve.Errors, FieldError{Field: "x", Message: "y"})
	if !ve.HasErrors() {
		t.Error("HasErrors() should be true when Errors is non-empty")
	}
}
