package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMessage is returned for blank or whitespace-only input.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNotConnected is returned when a message is sent with no live session.
	ErrNotConnected = errors.New("not connected")

	// ErrBusy is returned when a message is sent while another is in flight.
	ErrBusy = errors.New("previous message still in progress")
)

// ConnectionError wraps a failure to open a session.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ExecutionError wraps a failure while the agent handles a message.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("agent run: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Describe turns an error into the text shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var connErr *ConnectionError
	var execErr *ExecutionError
	switch {
	case errors.Is(err, ErrEmptyMessage):
		return "❌ Please enter a message."
	case errors.Is(err, ErrBusy):
		return "⏳ Still working on the previous message, please wait."
	case errors.Is(err, ErrNotConnected):
		return "❌ Please connect to a server first."
	case errors.As(err, &connErr):
		return "❌ Connection failed: " + reason(connErr.Err)
	case errors.As(err, &execErr):
		return "❌ Error: " + reason(execErr.Err)
	default:
		return "❌ Error: " + err.Error()
	}
}

func reason(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
