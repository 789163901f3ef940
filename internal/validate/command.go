package validate

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SocialCareData/initiatives/internal/filesystem"
	"github.com/SocialCareData/initiatives/internal/registry"
	"github.com/SocialCareData/initiatives/internal/utils"
	flagutils "github.com/SocialCareData/initiatives/internal/utils/flags"
)

const (
	commandUseConstant                    = "validate <registry.csv>"
	commandShortDescriptionConstant       = "Check the registry file against the schema rules"
	commandLongDescriptionConstant        = "validate checks required columns, email leaks, slug shape and uniqueness, enumerations, dates, and URLs. Strict mode stops at the first violation; permissive mode reports every violation as a warning."
	commandExecutionErrorTemplateConstant = "validate failed: %w"
	flagStrictNameConstant                = "strict"
	flagStrictDescriptionConstant         = "Stop at the first violation"
	flagColorNameConstant                 = "color"
	flagColorDescriptionConstant          = "Color ERROR and WARNING prefixes on terminals"
	commandLogNameConstant                = "validate"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the validate configuration resolved by the application.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the validate cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            registry.FileSystem
	TerminalDetector      func() bool
}

// Build constructs the validate command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  utils.ExactArguments(1),
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	var strict bool
	var colorize bool
	flagutils.AddToggleFlag(command.Flags(), &strict, flagStrictNameConstant, "", defaults.Strict, flagStrictDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &colorize, flagColorNameConstant, "", defaults.Color, flagColorDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(flagStrictNameConstant) {
		configuration.Strict, _ = command.Flags().GetBool(flagStrictNameConstant)
	}
	if command.Flags().Changed(flagColorNameConstant) {
		configuration.Color, _ = command.Flags().GetBool(flagColorNameConstant)
	}

	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = filesystem.NewOSFileSystem()
	}

	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}

	reporter := NewReporter(command.OutOrStdout(), configuration.Color && builder.terminalAttached())
	service, serviceError := NewService(
		utils.NewCommandLogger(logger, commandLogNameConstant),
		registry.NewCSVStore(fileSystem, registry.StoreOptions{}),
		reporter,
	)
	if serviceError != nil {
		return serviceError
	}

	options := Options{
		RegistryPath: strings.TrimSpace(arguments[0]),
		Strict:       configuration.Strict,
	}
	if _, runError := service.Run(command.Context(), options); runError != nil {
		if utils.IsReportedError(runError) {
			return runError
		}
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) terminalAttached() bool {
	if builder.TerminalDetector != nil {
		return builder.TerminalDetector()
	}
	return !color.NoColor
}
