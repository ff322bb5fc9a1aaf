package tspro

import (
	"errors"
	"fmt"
)

// Sentinel errors for the TigerStop protocol client.
var (
	// ErrNotConnected indicates a request was attempted without a connection.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected indicates Connect was called after a successful connect.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrClosed indicates the client was closed and cannot be used again.
	ErrClosed = errors.New("client closed")

	// ErrInvalidField indicates an outbound field would break line framing.
	ErrInvalidField = errors.New("field contains delimiter or line terminator")

	// ErrInvalidPosition indicates a position that is NaN or infinite.
	ErrInvalidPosition = errors.New("position must be a finite number")
)

// ParseError describes why an inbound line or a command line was rejected.
type ParseError struct {
	Kind    ParseErrorKind
	Value   string // The offending text
	Message string // Additional context
}

// ParseErrorKind categorizes parsing errors.
type ParseErrorKind int

const (
	// ErrKindEmptyLine indicates a line with no content.
	ErrKindEmptyLine ParseErrorKind = iota
	// ErrKindInvalidEventCode indicates a first field that is not a decimal integer.
	ErrKindInvalidEventCode
	// ErrKindReservedEventCode indicates a wire line carrying a local-only code.
	ErrKindReservedEventCode
	// ErrKindMissingArgument indicates an event or command with too few arguments.
	ErrKindMissingArgument
	// ErrKindInvalidArgument indicates an argument that could not be decoded.
	ErrKindInvalidArgument
	// ErrKindInvalidCommand indicates an unknown command verb.
	ErrKindInvalidCommand
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrKindEmptyLine:
		return "empty line"
	case ErrKindInvalidEventCode:
		return fmt.Sprintf("invalid event code '%s'", e.Value)
	case ErrKindReservedEventCode:
		return fmt.Sprintf("reserved event code '%s'", e.Value)
	case ErrKindMissingArgument:
		return e.Message
	case ErrKindInvalidArgument:
		if e.Message != "" {
			return fmt.Sprintf("invalid argument '%s': %s", e.Value, e.Message)
		}
		return fmt.Sprintf("invalid argument '%s'", e.Value)
	case ErrKindInvalidCommand:
		return fmt.Sprintf("invalid command '%s'", e.Value)
	default:
		return fmt.Sprintf("parse error: %s", e.Value)
	}
}

// Helper functions to create specific parse errors.

func newEmptyLineError() error {
	return &ParseError{Kind: ErrKindEmptyLine}
}

func newInvalidEventCodeError(code string) error {
	return &ParseError{Kind: ErrKindInvalidEventCode, Value: code}
}

func newReservedEventCodeError(code string) error {
	return &ParseError{Kind: ErrKindReservedEventCode, Value: code}
}

// NewMissingArgumentError creates a parse error for a missing argument.
func NewMissingArgumentError(msg string) error {
	return &ParseError{Kind: ErrKindMissingArgument, Message: msg}
}

// NewInvalidArgumentError creates a parse error for an argument that could
// not be decoded.
func NewInvalidArgumentError(value, msg string) error {
	return &ParseError{Kind: ErrKindInvalidArgument, Value: value, Message: msg}
}

// NewInvalidCommandError creates a parse error for an unknown command verb.
func NewInvalidCommandError(cmd string) error {
	return &ParseError{Kind: ErrKindInvalidCommand, Value: cmd}
}

// ConnectionError represents a connection-related error.
type ConnectionError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("connection failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("connection failed: %s", e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError creates a new connection error.
func NewConnectionError(message string, cause error) error {
	return &ConnectionError{Message: message, Cause: cause}
}
