package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoCredential  = errors.New("no usable api credential")
	ErrNoStrategy    = errors.New("no optimization result available")
	ErrStageBusy     = errors.New("a pipeline stage is already running")
	ErrSafetyBlocked = errors.New("response withheld by safety policy")
	ErrEmptyResponse = errors.New("candidate contained no text")
	ErrNoImageData   = errors.New("candidate contained no image data")
)

// ValidationError reports a local precondition violation. Validation always
// runs before any network call, so a ValidationError implies zero outbound
// requests were made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-scoped validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ProviderError wraps a transport-level failure from either remote
// capability: non-2xx status, auth or quota rejection, network error.
type ProviderError struct {
	Stage      string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s provider: status %d: %s", e.Stage, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s provider: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s provider: %s", e.Stage, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError reports text that came back from the model but did not conform
// to the required four-key schema.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse strategy response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FetchError reports a failed network fetch of a system-provided asset, such
// as the preset person photo. It stays distinct from ProviderError because
// the failure is not caused by user input and never reaches the image model.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ReadError reports an unreadable local upload.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read upload: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
