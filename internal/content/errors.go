package content

import (
	"errors"
	"fmt"

	"github.com/dogbodymind/go-site/internal/locale"
)

// Stable machine-readable codes surfaced to API consumers alongside the
// human-readable message.
const (
	CodeMissingReference = "MISSING_REFERENCE"
	CodeQueryFailed      = "QUERY_FAILED"
	CodeInvalidLanguage  = "INVALID_LANGUAGE"
	CodeNotInitialized   = "NOT_INITIALIZED"
	CodeRequiredField    = "REQUIRED_FIELD"
)

var (
	ErrMissingReference = errors.New("content: referenced document is missing")
	ErrQueryFailed      = errors.New("content: query failed")
	ErrInvalidLanguage  = errors.New("content: language is not supported")
	ErrNotInitialized   = errors.New("content: session is not initialized")
	ErrInitialized      = errors.New("content: session is already initialized")
	ErrRequiredField    = errors.New("content: required field is missing")
)

// MissingReferenceError reports a document that a post or session depends on
// but that the dataset does not contain. At least one of ID and Slug names
// the hole; Type says what kind of document was expected.
type MissingReferenceError struct {
	Type   string
	ID     string
	Slug   string
	Locale locale.Code
}

func (e *MissingReferenceError) Error() string {
	switch {
	case e.Slug != "":
		return fmt.Sprintf("content: %s %q not found (locale %s)", e.Type, e.Slug, e.Locale)
	case e.ID != "":
		return fmt.Sprintf("content: %s %s not found (locale %s)", e.Type, e.ID, e.Locale)
	default:
		return fmt.Sprintf("content: %s not found (locale %s)", e.Type, e.Locale)
	}
}

func (e *MissingReferenceError) Unwrap() error {
	return ErrMissingReference
}

// Code returns the stable error code for API payloads.
func (e *MissingReferenceError) Code() string {
	return CodeMissingReference
}

// QueryFailedError wraps a transport or decode failure from the document
// store, tagged with the logical operation that issued the query.
type QueryFailedError struct {
	Operation string
	Locale    locale.Code
	Err       error
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("content: %s query failed: %v", e.Operation, e.Err)
}

func (e *QueryFailedError) Unwrap() error {
	return e.Err
}

func (e *QueryFailedError) Is(target error) bool {
	return target == ErrQueryFailed
}

// Code returns the stable error code for API payloads.
func (e *QueryFailedError) Code() string {
	return CodeQueryFailed
}

// InvalidLanguageError reports a locale code outside the supported set. Raw
// preserves the rejected input verbatim.
type InvalidLanguageError struct {
	Raw string
}

func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("content: language %q is not supported", e.Raw)
}

func (e *InvalidLanguageError) Unwrap() error {
	return ErrInvalidLanguage
}

// Code returns the stable error code for API payloads.
func (e *InvalidLanguageError) Code() string {
	return CodeInvalidLanguage
}

// RequiredFieldError reports a document that survived fetching but cannot be
// displayed because a contractually required field is empty at every
// fallback tier.
type RequiredFieldError struct {
	Field  string
	ID     string
	Locale locale.Code
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("content: post %s has no %s (locale %s)", e.ID, e.Field, e.Locale)
}

func (e *RequiredFieldError) Unwrap() error {
	return ErrRequiredField
}

// Code returns the stable error code for API payloads.
func (e *RequiredFieldError) Code() string {
	return CodeRequiredField
}
