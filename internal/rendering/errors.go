// Package rendering lays out resumes as paginated PDF documents and static
// portfolio pages.
package rendering

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplate is the cause of a ConfigurationError for a name missing
// from the registry.
var ErrUnknownTemplate = errors.New("unknown template")

// ConfigurationError reports an unusable template. It is returned before any
// layout work starts.
type ConfigurationError struct {
	Template string
	Message  string
	Cause    error
}

func (e *ConfigurationError) Error() string {
	if e.Template != "" {
		return fmt.Sprintf("configuration error: %s: %q", e.Message, e.Template)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure inside the PDF writer.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
