package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/gradeboard/internal/logger"
)

// UserError pairs a static, user-facing message with the underlying cause.
// The message is what gets printed; the cause is only logged.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }

// User wraps err behind a static user-facing message.
func User(message string, err error) error {
	return &UserError{Message: message, Err: err}
}

// Message returns the user-facing text for err: the outermost UserError
// message when one is present, otherwise err's own text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if stderrors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + Message(err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
