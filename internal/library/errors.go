package library

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound reports that the gateway has no book with the requested id.
var ErrNotFound = errors.New("book not found")

// Messages shown inline by the forms.
const (
	MsgFieldsRequired = "All fields are required."
	MsgInvalidYear    = "Please enter a valid publication year."
)

// StatusError is returned for any non-2xx gateway response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// ValidationError is a client-side field check failure. Nothing is sent to
// the gateway when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
