package latex

import (
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrClient Err = iota
	ErrAuthentication
	ErrRender
	ErrAPI
	ErrConnection
)

const (
	// Messages returned by the server when compilation fails
	RenderFailedHTML = "latex render failed"
	RenderFailedPDF  = "pdf render failed"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Err is the kind of failure
type Err int

// Error is returned by every client operation. The Err field selects which
// of the other fields are meaningful: StatusCode is set for ErrAuthentication,
// ErrRender and ErrAPI, Detail for ErrRender and Cause for ErrConnection.
type Error struct {
	Err        Err
	Message    string
	StatusCode int
	Detail     string
	Cause      error
}

var _ error = (*Error)(nil)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewAuthenticationError returns an error for a rejected API key
func NewAuthenticationError(message string) *Error {
	return &Error{Err: ErrAuthentication, Message: message, StatusCode: 401}
}

// NewRenderError returns an error for a document the server could not compile,
// with the compiler diagnostics in detail
func NewRenderError(message, detail string) *Error {
	return &Error{Err: ErrRender, Message: message, StatusCode: 400, Detail: detail}
}

// NewAPIError returns an error for any other unsuccessful response
func NewAPIError(message string, status int) *Error {
	return &Error{Err: ErrAPI, Message: message, StatusCode: status}
}

// NewConnectionError returns an error for a failure below HTTP
func NewConnectionError(message string, cause error) *Error {
	return &Error{Err: ErrConnection, Message: message, Cause: cause}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - ERR

func (e Err) Error() string {
	switch e {
	case ErrClient:
		return "client error"
	case ErrAuthentication:
		return "authentication error"
	case ErrRender:
		return "render error"
	case ErrAPI:
		return "api error"
	case ErrConnection:
		return "connection error"
	}
	return fmt.Sprintf("error code %d", int(e))
}

// With returns an error of this kind with the arguments as the message
func (e Err) With(args ...interface{}) *Error {
	return &Error{Err: e, Message: fmt.Sprint(args...)}
}

// Withf returns an error of this kind with a formatted message
func (e Err) Withf(format string, args ...interface{}) *Error {
	return &Error{Err: e, Message: fmt.Sprintf(format, args...)}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - ERROR

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the kind of this error, so that
// errors.Is(err, latex.ErrRender) works through wrapping
func (e *Error) Is(target error) bool {
	if kind, ok := target.(Err); ok {
		return e.Err == kind
	}
	return false
}

// DetailLines returns the TeX error lines (those starting with "!") from
// the detail. When there are none, all non-empty lines are returned.
func (e *Error) DetailLines() []string {
	var all, errs []string
	for _, line := range strings.Split(e.Detail, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		all = append(all, line)
		if strings.HasPrefix(line, "!") {
			errs = append(errs, line)
		}
	}
	if len(errs) == 0 {
		return all
	}
	return errs
}
