package gateway

import "fmt"

// ValidationError reports a malformed request. It is detected before any
// network call and maps to HTTP 400; the message is safe to show the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
