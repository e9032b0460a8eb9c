package assistant

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a request that is missing required fields.
var ErrInvalidInput = errors.New("invalid input")

// ErrNoClient is returned by a Service built without an LLM client.
var ErrNoClient = errors.New("no LLM client configured")

// GenerationError reports a failed or unusable model answer.
type GenerationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error: %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error: %s: %s", e.Operation, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
