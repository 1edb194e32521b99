/*
Package errs provides custom error types and client-level error code constants.

This file defines the CustomError struct, which implements the standard Go error interface
and carries a code, the error kind from the client's error taxonomy, and a user-facing message.
*/
package errs

import (
	"errors"
	"fmt"
	"strings"

	"termchat/internal/pkg/logx"
)

// Kind classifies a CustomError by how it is reported.
type Kind int

const (
	// KindInternal is used for errors that fit no other kind.
	KindInternal Kind = iota

	// KindRejectedCommand errors are returned synchronously to the caller of a command.
	KindRejectedCommand

	// KindTransport errors are reported via events and force the connection closed.
	KindTransport

	// KindProtocol errors are reported as diagnostics; the connection stays alive.
	KindProtocol

	// KindServerRejection errors are reported, then the client closes the connection.
	KindServerRejection
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRejectedCommand:
		return "rejected_command"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindServerRejection:
		return "server_rejection"
	default:
		return "internal"
	}
}

// CustomError is the custom error structure used throughout the client.
type CustomError struct {
	// Code is the error code (see constants definition).
	Code int

	// Kind is the error's place in the taxonomy.
	Kind Kind

	// Message is the user-friendly error description.
	Message string
}

// Error implements the standard Go error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("error %d (%s): %s", e.Code, e.Kind, e.Message)
}

// Is reports whether target is a CustomError with the same code, so that
// errors.Is(err, errs.NewError(errs.ErrNotConnected)) matches regardless of message details.
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError constructs and returns a new *CustomError instance based on a predefined error code.
// The optional details are printf-style arguments for the message template.
// If an unknown code is provided, it defaults to returning ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &unknownErr
	}

	customErr := templateErr

	if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn(
				"Details provided for error, but message template has no formatting placeholders. Details ignored.",
				"code", code,
			)
		}
	}

	return &customErr
}

// CodeOf returns the code of the first CustomError in err's chain, or ErrUnknown.
func CodeOf(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return ErrUnknown
}

// IsRejected reports whether err is a rejected-command error.
func IsRejected(err error) bool {
	var customErr *CustomError
	return errors.As(err, &customErr) && customErr.Kind == KindRejectedCommand
}

// MessageOf returns the user-facing message of the first CustomError in err's chain,
// or err's own text.
func MessageOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return err.Error()
}
