package validate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SocialCareData/initiatives/internal/registry"
	"github.com/SocialCareData/initiatives/internal/utils"
)

const (
	registryReadErrorTemplateConstant     = "unable to read registry: %w"
	reportErrorTemplateConstant           = "unable to write validation report: %w"
	missingColumnsErrorTemplateConstant   = "%w: %v"
	validationFailedErrorTemplateConstant = "%w: %s"
	serviceDependencyMissingTemplate      = "validate service dependency missing: %s"
	dependencyNameReaderConstant          = "table reader"
	dependencyNameReporterConstant        = "reporter"
	logMessageRegistryMissingConstant     = "registry file not found"
	logMessageValidationFinishedConstant  = "registry validation finished"
	logMessageViolationConstant           = "registry violation"
	logFieldRegistryPathConstant          = "registry_path"
	logFieldStrictConstant                = "strict"
	logFieldRowCountConstant              = "row_count"
	logFieldViolationCountConstant        = "violation_count"
	logFieldHaltedConstant                = "halted"
	logFieldLineConstant                  = "line"
	logFieldColumnConstant                = "column"
)

// Service validates a registry file and reports the outcome.
type Service struct {
	logger   *zap.Logger
	reader   TableReader
	reporter *Reporter
}

// NewService validates dependencies and constructs a Service.
func NewService(logger *zap.Logger, reader TableReader, reporter *Reporter) (*Service, error) {
	if reader == nil {
		return nil, fmt.Errorf(serviceDependencyMissingTemplate, dependencyNameReaderConstant)
	}
	if reporter == nil {
		return nil, fmt.Errorf(serviceDependencyMissingTemplate, dependencyNameReporterConstant)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, reader: reader, reporter: reporter}, nil
}

// Run reads the registry, validates it, and writes the report. Failures that
// were already reported are returned as utils.ReportedError.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	if executionContext != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return Result{}, contextError
		}
	}

	table, readError := service.reader.ReadTable(options.RegistryPath)
	if readError != nil {
		if errors.Is(readError, registry.ErrRegistryNotFound) {
			service.logger.Warn(logMessageRegistryMissingConstant, zap.String(logFieldRegistryPathConstant, options.RegistryPath))
			if reportError := service.reporter.ReportFileNotFound(options.RegistryPath); reportError != nil {
				return Result{}, fmt.Errorf(reportErrorTemplateConstant, reportError)
			}
			return Result{}, &utils.ReportedError{Cause: readError}
		}
		return Result{}, fmt.Errorf(registryReadErrorTemplateConstant, readError)
	}

	result := NewValidator(options.Strict).Validate(table)
	for _, violation := range result.Violations {
		service.logger.Debug(
			logMessageViolationConstant,
			zap.Int(logFieldLineConstant, violation.Line),
			zap.String(logFieldColumnConstant, violation.Column),
		)
	}

	service.logger.Info(
		logMessageValidationFinishedConstant,
		zap.String(logFieldRegistryPathConstant, options.RegistryPath),
		zap.Bool(logFieldStrictConstant, options.Strict),
		zap.Int(logFieldRowCountConstant, result.Rows),
		zap.Int(logFieldViolationCountConstant, len(result.Violations)),
		zap.Bool(logFieldHaltedConstant, result.Halted),
	)

	if reportError := service.reporter.ReportResult(result, options.Strict); reportError != nil {
		return result, fmt.Errorf(reportErrorTemplateConstant, reportError)
	}

	if !result.Halted {
		return result, nil
	}

	if len(result.MissingColumns) > 0 {
		return result, &utils.ReportedError{Cause: fmt.Errorf(missingColumnsErrorTemplateConstant, ErrMissingColumns, result.MissingColumns)}
	}
	return result, &utils.ReportedError{Cause: fmt.Errorf(validationFailedErrorTemplateConstant, ErrValidationFailed, result.Violations[len(result.Violations)-1].String())}
}
