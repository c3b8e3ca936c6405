package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/elee1766/mcpchat/src/config"
	"github.com/elee1766/mcpchat/src/orclient"
	"github.com/elee1766/mcpchat/src/storage"
)

// Exit codes following standard conventions
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error
	ExitUsage       = 2 // Usage error
	ExitConfig      = 3 // Configuration error
	ExitAuth        = 4 // Authentication error
	ExitNotFound    = 5 // Missing transcript or endpoint
	ExitNetwork     = 6 // Network error
	ExitTimeout     = 7 // Timeout error
	ExitInterrupted = 8 // Interrupted by user
)

// errConnectFailed marks commands whose endpoint could not be reached.
var errConnectFailed = errors.New("connection failed")

// ErrorHandler handles different types of errors and exits with appropriate codes
type ErrorHandler struct {
	logger *slog.Logger
	exit   func(int)
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger, exit: os.Exit}
}

// HandleError handles an error and exits with the appropriate code
func (h *ErrorHandler) HandleError(err error) {
	if err == nil {
		return
	}

	h.logger.Debug("command failed", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
	h.exit(exitCode(err))
}

// exitCode determines the appropriate exit code for an error
func exitCode(err error) int {
	var validationErr config.ValidationError
	if apiErr, ok := orclient.AsAPIError(err); ok {
		if apiErr.IsAuthError() {
			return ExitAuth
		}
		return ExitNetwork
	}

	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeout
	case errors.As(err, &validationErr), strings.Contains(err.Error(), "configuration"):
		return ExitConfig
	case errors.Is(err, storage.ErrTranscriptNotFound), errors.Is(err, storage.ErrAmbiguousTranscript):
		return ExitNotFound
	case errors.Is(err, errConnectFailed):
		return ExitNetwork
	case strings.Contains(err.Error(), "invalid"), strings.Contains(err.Error(), "usage"):
		return ExitUsage
	default:
		return ExitError
	}
}
