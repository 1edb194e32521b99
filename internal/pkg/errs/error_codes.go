/*
Package errs provides custom error types and client-level error code constants.

These error codes identify why a command was refused or why a connection ended,
both inside the client core and in what is reported to the user interface.
*/
package errs

// 1xxx: Rejected commands (reported synchronously, no state change)
const (
	// ErrReservedUsername indicates the session identity uses the name reserved for the service.
	ErrReservedUsername = 1001

	// ErrAlreadyConnected indicates a Connect was issued while a connection attempt is still active.
	ErrAlreadyConnected = 1002

	// ErrNotConnected indicates a Send was issued without a live connection.
	ErrNotConnected = 1003

	// ErrEmptyMessage indicates a Send was issued with blank content.
	ErrEmptyMessage = 1004

	// ErrSessionClosed indicates the session has been shut down and accepts no further commands.
	ErrSessionClosed = 1005
)

// 2xxx: Transport errors (reported via events, connection forced closed)
const (
	// ErrConnectFailed indicates the transport could not be established.
	ErrConnectFailed = 2001

	// ErrConnectionLost indicates the transport failed after it was established.
	ErrConnectionLost = 2002
)

// 3xxx: Protocol errors (reported as diagnostics, connection stays alive)
const (
	// ErrUnrecognizedFrame indicates an inbound frame could not be decoded.
	ErrUnrecognizedFrame = 3001
)

// 4xxx: Server rejections (reported, then the connection is closed by the client)
const (
	// ErrAuthFailed indicates the service refused the join credentials.
	ErrAuthFailed = 4001

	// ErrServerError indicates the service reported an error for this session.
	ErrServerError = 4002

	// ErrKicked indicates the service removed this session from the room.
	ErrKicked = 4003
)

// 5xxx: Internal errors
const (
	// ErrUnknown represents an unclassified client error.
	ErrUnknown = 5000
)
