package ingest

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/SocialCareData/initiatives/internal/registry"
)

const (
	ingestedTemplateConstant           = "Ingested issue into %s (slug=%s, %s)\n"
	missingSlugMessageConstant         = "ERROR: 'slug' is required in the issue form\n"
	eventLoadErrorTemplateConstant     = "unable to load issue event: %w"
	registryLoadErrorTemplateConstant  = "unable to load registry: %w"
	registryWriteErrorTemplateConstant = "unable to write registry: %w"
	serviceDependencyMissingTemplate   = "ingest service dependency missing: %s"
	logMessageEventLoadedConstant      = "issue event loaded"
	logMessageFieldsExtractedConstant  = "issue form fields extracted"
	logMessageMissingSlugConstant      = "issue form submission has no slug"
	logMessageRegistryUpdatedConstant  = "registry updated"
	logFieldIssueURLConstant           = "issue_url"
	logFieldAuthorConstant             = "author"
	logFieldFieldNamesConstant         = "fields"
	logFieldRegistryPathConstant       = "registry_path"
	logFieldSlugConstant               = "slug"
	logFieldActionConstant             = "action"
	logFieldRowCountConstant           = "row_count"
	dependencyNameStoreConstant        = "store"
	dependencyNameExtractorConstant    = "extractor"
	dependencyNameEventSourceConstant  = "event source"
)

// ServiceDependencies enumerates the collaborators required by Service.
type ServiceDependencies struct {
	Logger       *zap.Logger
	Store        RegistryStore
	Extractor    FieldExtractor
	EventSource  EventSource
	Clock        Clock
	OutputWriter io.Writer
	ErrorWriter  io.Writer
}

// Service ingests one issue event into the registry.
type Service struct {
	logger       *zap.Logger
	store        RegistryStore
	extractor    FieldExtractor
	eventSource  EventSource
	clock        Clock
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Store == nil {
		return nil, fmt.Errorf(serviceDependencyMissingTemplate, dependencyNameStoreConstant)
	}
	if dependencies.Extractor == nil {
		return nil, fmt.Errorf(serviceDependencyMissingTemplate, dependencyNameExtractorConstant)
	}
	if dependencies.EventSource == nil {
		return nil, fmt.Errorf(serviceDependencyMissingTemplate, dependencyNameEventSourceConstant)
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clock := dependencies.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	outputWriter := dependencies.OutputWriter
	if outputWriter == nil {
		outputWriter = io.Discard
	}

	errorWriter := dependencies.ErrorWriter
	if errorWriter == nil {
		errorWriter = io.Discard
	}

	return &Service{
		logger:       logger,
		store:        dependencies.Store,
		extractor:    dependencies.Extractor,
		eventSource:  dependencies.EventSource,
		clock:        clock,
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
	}, nil
}

// Run loads the event, upserts its fields, and rewrites the registry.
func (service *Service) Run(executionContext context.Context, options Options) (Outcome, error) {
	if executionContext != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return Outcome{}, contextError
		}
	}

	event, eventError := service.eventSource.Load()
	if eventError != nil {
		return Outcome{}, fmt.Errorf(eventLoadErrorTemplateConstant, eventError)
	}

	service.logger.Debug(
		logMessageEventLoadedConstant,
		zap.String(logFieldIssueURLConstant, event.IssueURL),
		zap.String(logFieldAuthorConstant, event.Author),
	)

	fields := service.extractor.Extract(event.Body)
	service.logger.Debug(logMessageFieldsExtractedConstant, zap.Strings(logFieldFieldNamesConstant, sortedFieldNames(fields)))

	rows, loadError := service.store.Load(options.RegistryPath)
	if loadError != nil {
		return Outcome{}, fmt.Errorf(registryLoadErrorTemplateConstant, loadError)
	}

	provenance := Provenance{
		IssueURL: event.IssueURL,
		Author:   event.Author,
		Today:    service.clock.Now().Format(registry.DateLayout),
	}

	updatedRows, outcome := Upsert(rows, fields, provenance)
	if outcome.MissingSlug {
		if _, writeError := io.WriteString(service.errorWriter, missingSlugMessageConstant); writeError != nil {
			return Outcome{}, writeError
		}
		service.logger.Warn(logMessageMissingSlugConstant, zap.String(logFieldIssueURLConstant, event.IssueURL))
	}

	if writeError := service.store.Write(options.RegistryPath, updatedRows); writeError != nil {
		return Outcome{}, fmt.Errorf(registryWriteErrorTemplateConstant, writeError)
	}

	service.logger.Info(
		logMessageRegistryUpdatedConstant,
		zap.String(logFieldRegistryPathConstant, options.RegistryPath),
		zap.String(logFieldSlugConstant, outcome.Slug),
		zap.String(logFieldActionConstant, string(outcome.Action)),
		zap.Int(logFieldRowCountConstant, len(updatedRows)),
	)

	if _, printError := fmt.Fprintf(service.outputWriter, ingestedTemplateConstant, options.RegistryPath, outcome.Slug, outcome.Action); printError != nil {
		return Outcome{}, printError
	}

	return outcome, nil
}

func sortedFieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
