package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/SocialCareData/initiatives/internal/ingest"
	"github.com/SocialCareData/initiatives/internal/utils"
	flagutils "github.com/SocialCareData/initiatives/internal/utils/flags"
	"github.com/SocialCareData/initiatives/internal/validate"
)

const (
	applicationNameConstant                 = "initiatives"
	applicationShortDescriptionConstant     = "Maintain the initiatives registry CSV"
	applicationLongDescriptionConstant      = "initiatives ingests issue-form submissions into the initiatives registry and validates the registry against its schema."
	versionTemplateConstant                 = "initiatives version: {{.Version}}\n"
	developmentVersionConstant              = "dev"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	toolsConfigurationKeyConstant           = "tools"
	ingestConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".ingest"
	validateConfigurationKeyConstant        = toolsConfigurationKeyConstant + ".validate"
	environmentPrefixConstant               = "INITIATIVES"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultConfigurationSearchPathConstant  = "."
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	errorLineTemplateConstant               = "ERROR: %v\n"
	exitCodeSuccess                         = 0
	exitCodeOperationError                  = 1
	exitCodeUsageError                      = 2
)

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/SocialCareData/initiatives/cmd/cli.Version=<version>".
var Version = ""

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for each subcommand.
type ApplicationToolsConfiguration struct {
	Ingest   ingest.CommandConfiguration   `mapstructure:"ingest"`
	Validate validate.CommandConfiguration `mapstructure:"validate"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       resolveVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	cobraCommand.SetVersionTemplate(versionTemplateConstant)
	cobraCommand.SetFlagErrorFunc(func(command *cobra.Command, flagError error) error {
		return &utils.UsageError{UseLine: command.UseLine(), Cause: flagError}
	})
	cobraCommand.SetContext(context.Background())

	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", flagutils.FormatChoiceUsage(string(utils.LogLevelInfo), utils.LogLevels(), logLevelFlagUsageConstant))
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flagutils.FormatChoiceUsage(string(utils.LogFormatStructured), utils.LogFormats(), logFormatFlagUsageConstant))

	ingestBuilder := ingest.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() ingest.CommandConfiguration {
			return application.configuration.Tools.Ingest
		},
	}
	ingestCommand, ingestBuildError := ingestBuilder.Build()
	if ingestBuildError == nil {
		cobraCommand.AddCommand(ingestCommand)
	}

	validateBuilder := validate.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() validate.CommandConfiguration {
			return application.configuration.Tools.Validate
		},
	}
	validateCommand, validateBuildError := validateBuilder.Build()
	if validateBuildError == nil {
		cobraCommand.AddCommand(validateCommand)
	}

	application.rootCommand = cobraCommand
	return application
}

// SetOutputs redirects command output and diagnostic logs.
func (application *Application) SetOutputs(standardOutput io.Writer, standardError io.Writer) {
	application.rootCommand.SetOut(standardOutput)
	application.rootCommand.SetErr(standardError)
	application.loggerFactory = utils.NewLoggerFactoryWithOutput(standardError)
}

// Execute runs the command hierarchy with arguments and flushes the logger.
func (application *Application) Execute(arguments []string) error {
	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(arguments))
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Run executes the CLI and returns the process exit code: 0 on success, 2 for
// usage errors, and 1 for every other failure. Failures not already reported
// by a command are printed to standardError.
func Run(arguments []string, standardOutput io.Writer, standardError io.Writer) int {
	application := NewApplication()
	application.SetOutputs(standardOutput, standardError)

	executionError := application.Execute(arguments)
	if executionError != nil && !utils.IsReportedError(executionError) {
		fmt.Fprintf(standardError, errorLineTemplateConstant, executionError)
	}
	return ExitCode(executionError)
}

// ExitCode maps an execution error to the process exit code.
func ExitCode(executionError error) int {
	switch {
	case executionError == nil:
		return exitCodeSuccess
	case utils.IsUsageError(executionError):
		return exitCodeUsageError
	default:
		return exitCodeOperationError
	}
}

// Main runs the CLI against the process arguments and standard streams.
func Main() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range ingest.DefaultConfigurationValues(ingestConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range validate.DefaultConfigurationValues(validateConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return &utils.UsageError{UseLine: command.UseLine(), Cause: fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)}
	}
	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP), errors.Is(syncError, syscall.EINVAL), errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}

func resolveVersion() string {
	if len(Version) > 0 {
		return Version
	}
	if buildInformation, available := debug.ReadBuildInfo(); available {
		if moduleVersion := buildInformation.Main.Version; len(moduleVersion) > 0 && moduleVersion != "(devel)" {
			return moduleVersion
		}
	}
	return developmentVersionConstant
}
