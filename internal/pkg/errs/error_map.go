/*
Package errs provides custom error types and client-level error code constants.

This file defines the map from error codes to the CustomError struct.
*/
package errs

// errorMap stores the CustomError template for every error code.
var errorMap = map[int]CustomError{
	// 1xxx: Rejected commands
	ErrReservedUsername: {Code: ErrReservedUsername, Kind: KindRejectedCommand, Message: "The username '%s' is reserved."},
	ErrAlreadyConnected: {Code: ErrAlreadyConnected, Kind: KindRejectedCommand, Message: "Already connected."},
	ErrNotConnected:     {Code: ErrNotConnected, Kind: KindRejectedCommand, Message: "Not connected to server."},
	ErrEmptyMessage:     {Code: ErrEmptyMessage, Kind: KindRejectedCommand, Message: "Message is empty."},
	ErrSessionClosed:    {Code: ErrSessionClosed, Kind: KindRejectedCommand, Message: "Session is closed."},

	// 2xxx: Transport errors
	ErrConnectFailed:  {Code: ErrConnectFailed, Kind: KindTransport, Message: "Failed to connect to server: %s"},
	ErrConnectionLost: {Code: ErrConnectionLost, Kind: KindTransport, Message: "Connection lost: %s"},

	// 3xxx: Protocol errors
	ErrUnrecognizedFrame: {Code: ErrUnrecognizedFrame, Kind: KindProtocol, Message: "Unrecognized frame."},

	// 4xxx: Server rejections
	ErrAuthFailed:  {Code: ErrAuthFailed, Kind: KindServerRejection, Message: "Authentication failed: %s"},
	ErrServerError: {Code: ErrServerError, Kind: KindServerRejection, Message: "Server error: %s"},
	ErrKicked:      {Code: ErrKicked, Kind: KindServerRejection, Message: "Kicked: %s"},

	// 5xxx: Internal errors
	ErrUnknown: {Code: ErrUnknown, Kind: KindInternal, Message: "Something went wrong."},
}
