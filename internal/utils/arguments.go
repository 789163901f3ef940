package utils

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	usageErrorTemplateConstant         = "usage: %s"
	argumentCountErrorTemplateConstant = "expected %d argument(s), received %d"
)

// UsageError reports a command invoked with the wrong arguments.
type UsageError struct {
	UseLine string
	Cause   error
}

// Error describes the usage failure.
func (usageError *UsageError) Error() string {
	if usageError.Cause == nil {
		return fmt.Sprintf(usageErrorTemplateConstant, usageError.UseLine)
	}
	return fmt.Sprintf(usageErrorTemplateConstant+" (%v)", usageError.UseLine, usageError.Cause)
}

// Unwrap exposes the underlying cause.
func (usageError *UsageError) Unwrap() error {
	return usageError.Cause
}

// IsUsageError reports whether err stems from invalid command-line usage.
func IsUsageError(err error) bool {
	var usageError *UsageError
	return errors.As(err, &usageError)
}

// ExactArguments requires exactly expectedCount positional arguments and reports violations as UsageError.
func ExactArguments(expectedCount int) cobra.PositionalArgs {
	return func(command *cobra.Command, arguments []string) error {
		if len(arguments) == expectedCount {
			return nil
		}
		return &UsageError{
			UseLine: command.UseLine(),
			Cause:   fmt.Errorf(argumentCountErrorTemplateConstant, expectedCount, len(arguments)),
		}
	}
}
