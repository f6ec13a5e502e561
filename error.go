package ricette

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Error represents an application-specific error with a machine-readable code.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ricette error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return the underlying error text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FetchError is returned when a page cannot be retrieved, either because of
// a transport failure or a non-success HTTP status.
type FetchError struct {
	URL        string
	StatusCode int // zero for transport errors
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError is returned when a structurally required node is missing
// from a recipe page.
type ExtractionError struct {
	URL   string
	Field string
}

func (e *ExtractionError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("extract: required field %q not found", e.Field)
	}
	return fmt.Sprintf("extract %s: required field %q not found", e.URL, e.Field)
}

// PersistenceError is returned when checkpoint state cannot be written.
// It is fatal for a crawl run.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsRecoverable reports whether a crawl may skip the item that produced err
// and continue with the next one.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	var fe *FetchError
	var ee *ExtractionError
	return errors.As(err, &fe) || errors.As(err, &ee)
}
