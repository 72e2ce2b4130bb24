package provider

import "fmt"

// transportError signals a backend HTTP failure with its status code.
type transportError struct {
	status int
	msg    string
}

func (e transportError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.status, e.msg)
}

// ErrTransport constructs a transportError.
func ErrTransport(status int, msg string) error { return transportError{status: status, msg: msg} }

// IsTransport reports whether err is a backend HTTP failure.
func IsTransport(err error) bool {
	_, ok := err.(transportError)
	return ok
}

// unavailableError signals a missing runtime dependency (e.g. llama.cpp
// support not compiled in).
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }

// ErrUnavailable constructs an unavailableError.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates a missing runtime dependency.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}
