package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorGeneration = 3   // Indicates no problem satisfied the drill settings.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrGenerationExhausted is the sentinel matched by every GenerationExhaustedError.
var ErrGenerationExhausted = errors.New("generation exhausted")

// GenerationExhaustedMessage is the user-facing text shown when no problem
// could be generated for the selected settings.
const GenerationExhaustedMessage = "条件を満たす問題が生成できませんでした。回数や難易度、モードを変更して再度お試しください。"

// ConfigError represents a user configuration error, such as invalid flags or
// incompatible settings. The drill cannot start until the user changes them.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// GenerationExhaustedError reports that the bounded search found no problem
// satisfying the difficulty rules. It is recoverable: the user changes the
// count, difficulty step or mode and tries again.
type GenerationExhaustedError struct {
	// Step is the difficulty step that was requested.
	Step int
	// Count is the requested number of operations.
	Count int
	// Mode is the operator mode ("add" or "mix").
	Mode string
	// Attempts is the number of full sequence constructions tried.
	Attempts int
}

// Error returns a formatted message describing the exhausted search.
func (e GenerationExhaustedError) Error() string {
	return fmt.Sprintf("no problem found for step %d, count %d, mode %s after %d attempts",
		e.Step, e.Count, e.Mode, e.Attempts)
}

// Is reports whether target is ErrGenerationExhausted.
func (e GenerationExhaustedError) Is(target error) bool {
	return target == ErrGenerationExhausted
}

// UserMessage returns the message intended for the display.
func (e GenerationExhaustedError) UserMessage() string {
	return GenerationExhaustedMessage
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// UserMessage returns the text to show the user for err. Errors that carry
// their own user-facing wording provide it; others fall back to Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var genErr GenerationExhaustedError
	if errors.As(err, &genErr) {
		return genErr.UserMessage()
	}
	return err.Error()
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrGenerationExhausted):
		return ExitErrorGeneration
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case IsContextError(err):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
