package reconcile

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/tmxaudit/internal/execshell"
	"github.com/temirov/tmxaudit/internal/livecfg"
	"github.com/temirov/tmxaudit/internal/manifest"
	"github.com/temirov/tmxaudit/internal/ui"
	"github.com/temirov/tmxaudit/internal/utils"
	pathutils "github.com/temirov/tmxaudit/internal/utils/path"
)

const (
	commandUseConstant              = "tmxaudit [manifest...]"
	commandShortDescriptionConstant = "Audit plugin configuration against expected manifests"
	commandLongDescriptionConstant  = "tmxaudit compares the plugin configuration reported by the configuration utility with one or more JSON or YAML manifests. " +
		"Every mismatching parameter is reported on standard error as the utility command that repairs it, and the process exits with the number of mismatches. " +
		"Manifest paths that start with a dash must follow the -- terminator."
	flagUtilityNameConstant        = "utility"
	flagUtilityDescriptionConstant = "Configuration utility executable used to query live configuration"
	auditStartedMessageConstant    = "audit started"
	logFieldUtilityConstant        = "utility"
	logFieldConfigurationConstant  = "config_file"
	logFieldManifestsConstant      = "manifests"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the Cobra command that audits manifests.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	Loader                       ManifestLoader
	Fetcher                      livecfg.Fetcher
	Runner                       execshell.CommandRunner
	PathExpander                 *pathutils.HomeExpander
}

// Build constructs the audit command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}

	command.Flags().String(flagUtilityNameConstant, "", flagUtilityDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		command.SetOut(command.ErrOrStderr())
		return command.Help()
	}

	configuration := builder.resolveConfiguration(command)
	logger := builder.resolveLogger()

	fetcher, fetcherError := builder.resolveFetcher(logger, configuration)
	if fetcherError != nil {
		return fetcherError
	}

	reporter, reporterError := NewReporter(command.ErrOrStderr(), configuration.Executable)
	if reporterError != nil {
		return reporterError
	}

	service, serviceError := NewService(builder.resolveLoader(), fetcher, reporter, logger)
	if serviceError != nil {
		return serviceError
	}

	manifestPaths := builder.resolvePathExpander().ExpandAll(arguments)
	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(
		auditStartedMessageConstant,
		zap.String(logFieldUtilityConstant, configuration.Executable),
		zap.String(logFieldConfigurationConstant, configurationFilePath),
		zap.Strings(logFieldManifestsConstant, manifestPaths),
	)

	summary, runError := service.Run(command.Context(), manifestPaths)
	if runError != nil {
		return runError
	}

	if summary.Failures > 0 {
		return MismatchError{Count: summary.Failures}
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	if command != nil && command.Flags().Changed(flagUtilityNameConstant) {
		utilityValue, _ := command.Flags().GetString(flagUtilityNameConstant)
		if trimmedUtility := strings.TrimSpace(utilityValue); len(trimmedUtility) > 0 {
			configuration.Executable = trimmedUtility
		}
	}

	return configuration.sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveLoader() ManifestLoader {
	if builder.Loader != nil {
		return builder.Loader
	}
	return manifest.NewLoader(nil)
}

func (builder *CommandBuilder) resolvePathExpander() *pathutils.HomeExpander {
	if builder.PathExpander != nil {
		return builder.PathExpander
	}
	return pathutils.NewHomeExpander()
}

func (builder *CommandBuilder) resolveFetcher(logger *zap.Logger, configuration CommandConfiguration) (livecfg.Fetcher, error) {
	if builder.Fetcher != nil {
		return builder.Fetcher, nil
	}

	commandRunner := builder.Runner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	executorOptions := []execshell.ShellExecutorOption{}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, executorOptions...)
	if executorError != nil {
		return nil, executorError
	}

	utilityFetcher, fetcherError := livecfg.NewUtilityFetcher(shellExecutor, execshell.CommandName(configuration.Executable))
	if fetcherError != nil {
		return nil, fetcherError
	}

	return utilityFetcher, nil
}
