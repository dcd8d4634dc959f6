package oerror

import "fmt"

// Error is the error type raised for contract violations inside the solver, such as degenerate collision
// shapes handed to a geometric query.
type Error struct {
	Err string
}

// New returns an Error with a message formatted from the format and arguments passed.
func New(format string, args ...any) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
