package response

import (
	"fmt"
	"net/http"
)

// Error is an API error under construction. Handlers start from one of the
// canned constructors and chain AddMessages/WithResult before handing it to
// WriteError; the leading Message is always safe to show to a customer.
type Error struct {
	StatusCode int
	Message    string
	Messages   []string
	Result     interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// AddMessages appends handler-specific detail after the canned message
func (e *Error) AddMessages(msgs ...string) *Error {
	e.Messages = append(e.Messages, msgs...)
	return e
}

// WithMessage replaces the canned customer-facing message
func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

// WithResult attaches a partial result to the error envelope
func (e *Error) WithResult(result interface{}) *Error {
	e.Result = result
	return e
}

func newError(status int, message string) *Error {
	return &Error{
		StatusCode: status,
		Message:    message,
		Messages:   make([]string, 0),
		Result:     []string{},
	}
}

// ErrUnexpected is the catch-all for failures the customer cannot act on
func ErrUnexpected() *Error {
	return newError(http.StatusInternalServerError, "Something went wrong on our end")
}

func ErrBadRequest() *Error {
	return newError(http.StatusBadRequest, "Your request could not be processed")
}

func ErrUnauthorized() *Error {
	return newError(http.StatusUnauthorized, "Please sign in to continue")
}

func ErrNotFound() *Error {
	return newError(http.StatusNotFound, "The requested resource was not found")
}

func ErrMethodNotAllowed() *Error {
	return newError(http.StatusMethodNotAllowed, "Method not allowed")
}

func ErrInvalidJson() *Error {
	return ErrBadRequest().AddMessages("Request body is not valid JSON")
}

func ErrNoBearer() *Error {
	return ErrUnauthorized().AddMessages("Missing or invalid Bearer token")
}
