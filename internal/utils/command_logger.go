package utils

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	logFieldCommandConstant       = "command"
	logFieldRunIdentifierConstant = "run_id"
)

// NewCommandLogger tags baseLogger with the command name and a fresh run identifier.
func NewCommandLogger(baseLogger *zap.Logger, commandName string) *zap.Logger {
	if baseLogger == nil {
		baseLogger = zap.NewNop()
	}
	return baseLogger.With(
		zap.String(logFieldCommandConstant, commandName),
		zap.String(logFieldRunIdentifierConstant, uuid.NewString()),
	)
}
