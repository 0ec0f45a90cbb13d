package cli

import (
	"errors"
	"fmt"

	"mercator-hq/advent/pkg/config"
	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1 // Unclassified failure
	ExitConfig  = 2 // Invalid flags or configuration
	ExitInput   = 3 // Puzzle input rejected
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode returns the exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cfgErr *ConfigError
	var validationErr config.ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &validationErr) {
		return ExitConfig
	}

	if _, ok := puzzleerrors.KindOf(err); ok {
		return ExitInput
	}
	var list *puzzleerrors.ErrorList
	if errors.As(err, &list) {
		return ExitInput
	}

	return ExitFailure
}
