package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SocialCareData/initiatives/internal/filesystem"
	"github.com/SocialCareData/initiatives/internal/issueform"
	"github.com/SocialCareData/initiatives/internal/registry"
	"github.com/SocialCareData/initiatives/internal/utils"
	flagutils "github.com/SocialCareData/initiatives/internal/utils/flags"
)

const (
	commandUseConstant                    = "ingest <registry.csv>"
	commandShortDescriptionConstant       = "Upsert the triggering issue form submission into the registry"
	commandLongDescriptionConstant        = "ingest reads the issue event referenced by the event path environment variable, extracts the issue form fields, and adds or updates the matching registry row."
	commandExecutionErrorTemplateConstant = "ingest failed: %w"
	flagCRLFNameConstant                  = "crlf"
	flagCRLFDescriptionConstant           = "Terminate registry lines with CRLF"
	commandLogNameConstant                = "ingest"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the ingest configuration resolved by the application.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the ingest cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            FileSystem
	EnvironmentLookup     EnvironmentLookup
	Clock                 Clock
}

// Build constructs the ingest command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  utils.ExactArguments(1),
		RunE:  builder.run,
	}

	var useCRLF bool
	flagutils.AddToggleFlag(command.Flags(), &useCRLF, flagCRLFNameConstant, "", DefaultCommandConfiguration().UseCRLF, flagCRLFDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(flagCRLFNameConstant) {
		useCRLF, _ := command.Flags().GetBool(flagCRLFNameConstant)
		configuration.UseCRLF = useCRLF
	}

	fileSystem := builder.resolveFileSystem()
	logger := builder.resolveLogger()

	service, serviceError := NewService(ServiceDependencies{
		Logger:       logger,
		Store:        registry.NewCSVStore(fileSystem, registry.StoreOptions{UseCRLF: configuration.UseCRLF}),
		Extractor:    issueform.NewExtractor(configuration.FormFields),
		EventSource:  NewEventLoader(fileSystem, builder.resolveEnvironmentLookup(), configuration.EventPathVariable, configuration.UnknownAuthor),
		Clock:        builder.Clock,
		OutputWriter: command.OutOrStdout(),
		ErrorWriter:  command.ErrOrStderr(),
	})
	if serviceError != nil {
		return serviceError
	}

	options := Options{RegistryPath: strings.TrimSpace(arguments[0])}
	if _, runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return filesystem.NewOSFileSystem()
}

func (builder *CommandBuilder) resolveEnvironmentLookup() EnvironmentLookup {
	if builder.EnvironmentLookup != nil {
		return builder.EnvironmentLookup
	}
	return os.LookupEnv
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	return utils.NewCommandLogger(logger, commandLogNameConstant)
}
