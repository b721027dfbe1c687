package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrWriteFailed          = errors.New("write error")
)

// WizardError represents a structured error with actionable guidance
type WizardError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *WizardError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *WizardError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError wraps a tool-settings failure with guidance.
func NewConfigurationError(message string, cause error) *WizardError {
	guidance := "Check your settings file syntax. " +
		"Use 'wpswizard --config /path/to/config.toml' to specify a different settings file."

	if strings.Contains(message, "permission") {
		guidance = "Check file permissions for your settings directory. " +
			"Ensure you have read access to ~/.config/wpswizard/"
	}

	return &WizardError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

// NewWriteError wraps an output failure with guidance. The pre-existing
// output file, if any, is untouched when this is returned.
func NewWriteError(path string, cause error) *WizardError {
	message := fmt.Sprintf("failed to write namelist to '%s'", path)
	guidance := fmt.Sprintf("Check that the directory for '%s' exists and you have write permissions. "+
		"Any previous file at that path was left unchanged.", path)

	if cause != nil && strings.Contains(cause.Error(), "no space") {
		guidance = "The disk is full. Free some space or choose an output path on another filesystem."
	}

	return &WizardError{
		Type:     ErrWriteFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}
