package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"syscall"

	"github.com/julianstephens/moodlit/internal/client"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage"
)

type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported marks err as already shown to the user. Fatal still exits 1 for
// it but does not print it again.
func Reported(err error) error {
	if err == nil || IsReported(err) {
		return err
	}
	return &reportedError{err: err}
}

// IsReported reports whether err, or anything it wraps, was marked by Reported
func IsReported(err error) bool {
	var r *reportedError
	return stderrors.As(err, &r)
}

// Explain turns the failures users commonly hit into a message that says
// what to do next. Other errors are returned unchanged.
func Explain(err error) string {
	if err == nil {
		return ""
	}

	var status *client.StatusError
	switch {
	case stderrors.Is(err, storage.ErrNotInitialized):
		return fmt.Sprintf("no mood database yet, run '%s init' first", constants.AppName)
	case stderrors.Is(err, syscall.ECONNREFUSED):
		return fmt.Sprintf("could not reach the %s server, start one with '%s serve'", constants.AppName, constants.AppName)
	case stderrors.As(err, &status):
		msg := fmt.Sprintf("the %s server rejected the request (%d %s)", constants.AppName, status.Status, http.StatusText(status.Status))
		if status.Body != "" {
			msg += ": " + status.Body
		}
		return msg
	}
	return err.Error()
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + Explain(err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		if !IsReported(err) {
			fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		}
		os.Exit(1)
	}
}
