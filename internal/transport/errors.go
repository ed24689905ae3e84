package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBodyTooLarge marks a response whose body exceeds the read limit.
var ErrBodyTooLarge = errors.New("response body too large")

// Error is the uniform transport failure. Status is zero when no HTTP
// response was received.
type Error struct {
	Op      Operation
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failed: HTTP %d: %s", e.Op.Label(), e.Status, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op.Label(), e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Temporary reports whether retrying the same request might succeed.
func (e *Error) Temporary() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

func statusError(op Operation, status int, body []byte) *Error {
	msg := http.StatusText(status)
	if detail := errorDetail(body); detail != "" {
		msg = detail
	}
	if msg == "" {
		msg = "unexpected status"
	}
	return &Error{Op: op, Status: status, Message: msg}
}

func networkError(op Operation, err error) *Error {
	return &Error{Op: op, Message: err.Error(), Err: err}
}

// AsError unwraps err to *Error.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
