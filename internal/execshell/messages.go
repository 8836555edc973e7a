package execshell

import (
	"fmt"
	"strings"

	"github.com/temirov/tmxaudit/internal/plugin"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	pluginConfigStartTemplateConstant            = "Fetching configuration for plugin %s"
	pluginConfigSuccessTemplateConstant          = "Fetched configuration for plugin %s"
	pluginConfigEmptySuccessTemplateConstant     = "Plugin %s reported no configuration"
	pluginConfigFailureTemplateConstant          = "Failed to fetch configuration for plugin %s (exit code %d%s)"
	pluginConfigExecutionFailureTemplateConstant = "Unable to fetch configuration for plugin %s: %s"
	systemConfigStartTemplateConstant            = "Fetching system configuration"
	systemConfigSuccessTemplateConstant          = "Fetched system configuration"
	systemConfigEmptySuccessTemplateConstant     = "System configuration is empty"
	systemConfigFailureTemplateConstant          = "Failed to fetch system configuration (exit code %d%s)"
	systemConfigExecutionFailureTemplateConstant = "Unable to fetch system configuration: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Query == nil {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	if command.Query.Kind == plugin.KindSystem {
		return formatter.describeSystemConfigQuery(result, failure, stage)
	}
	return formatter.describePluginConfigQuery(command.Query.PluginName, result, failure, stage)
}

func (formatter CommandMessageFormatter) describePluginConfigQuery(queriedPluginName string, result ExecutionResult, failure error, stage messageStage) string {
	pluginName := formatter.ensureValue(queriedPluginName)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(pluginConfigStartTemplateConstant, pluginName)
	case messageStageSuccess:
		if len(result.StandardOutput) == 0 {
			return fmt.Sprintf(pluginConfigEmptySuccessTemplateConstant, pluginName)
		}
		return fmt.Sprintf(pluginConfigSuccessTemplateConstant, pluginName)
	case messageStageFailure:
		return fmt.Sprintf(pluginConfigFailureTemplateConstant, pluginName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(pluginConfigExecutionFailureTemplateConstant, pluginName, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeSystemConfigQuery(result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return systemConfigStartTemplateConstant
	case messageStageSuccess:
		if len(result.StandardOutput) == 0 {
			return systemConfigEmptySuccessTemplateConstant
		}
		return systemConfigSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(systemConfigFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(systemConfigExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}
