package livecfg

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/tmxaudit/internal/configvalue"
	"github.com/temirov/tmxaudit/internal/execshell"
	"github.com/temirov/tmxaudit/internal/manifest"
	"github.com/temirov/tmxaudit/internal/plugin"
)

const (
	executorNotConfiguredMessageConstant = "command executor not configured"
	queryFailedTemplateConstant          = "unable to query live configuration of plugin %q: %w"
	decodeFailedTemplateConstant         = "live configuration of plugin %q is not valid JSON: %w"
	unexpectedShapeTemplateConstant      = "live configuration of plugin %q is a %s, not an object"
	normalizeFailedTemplateConstant      = "live configuration of plugin %q: %w"
)

// ErrExecutorNotConfigured indicates a UtilityFetcher was built without a command executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// Fetcher retrieves the live configuration document of a plugin.
type Fetcher interface {
	FetchLiveConfig(executionContext context.Context, pluginName string) (configvalue.Value, error)
}

// CommandExecutor runs utility commands.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// UtilityFetcher queries the configuration utility once per plugin.
type UtilityFetcher struct {
	executor CommandExecutor
	utility  execshell.CommandName
}

// NewUtilityFetcher constructs a UtilityFetcher invoking utility. An empty utility name selects tmxctl.
func NewUtilityFetcher(executor CommandExecutor, utility execshell.CommandName) (*UtilityFetcher, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if len(utility) == 0 {
		utility = execshell.CommandConfigurationUtility
	}
	return &UtilityFetcher{executor: executor, utility: utility}, nil
}

// FetchLiveConfig runs the utility query for pluginName and decodes its output.
// Empty output yields an empty object. For the system configuration the inner record sequence is rebuilt into a mapping.
func (fetcher *UtilityFetcher) FetchLiveConfig(executionContext context.Context, pluginName string) (configvalue.Value, error) {
	kind := plugin.KindOf(pluginName)
	command := execshell.ShellCommand{
		Name:    fetcher.utility,
		Details: execshell.CommandDetails{Arguments: kind.QueryArguments(pluginName)},
		Query:   &execshell.ConfigurationQuery{PluginName: pluginName, Kind: kind},
	}

	result, executionError := fetcher.executor.Execute(executionContext, command)
	if executionError != nil {
		return configvalue.Value{}, fmt.Errorf(queryFailedTemplateConstant, pluginName, executionError)
	}

	if len(result.StandardOutput) == 0 {
		return configvalue.ObjectValue(nil), nil
	}

	document, parseError := configvalue.Parse([]byte(result.StandardOutput))
	if parseError != nil {
		return configvalue.Value{}, fmt.Errorf(decodeFailedTemplateConstant, pluginName, parseError)
	}

	documentObject, isObject := document.AsObject()
	if !isObject {
		return configvalue.Value{}, fmt.Errorf(unexpectedShapeTemplateConstant, pluginName, document.Kind())
	}

	if kind == plugin.KindSystem {
		if rawSystemConfig, present := documentObject.Get(plugin.SystemConfigName); present {
			normalized, normalizeError := manifest.NormalizeSystemConfig(rawSystemConfig)
			if normalizeError != nil {
				return configvalue.Value{}, fmt.Errorf(normalizeFailedTemplateConstant, pluginName, normalizeError)
			}
			documentObject.Set(plugin.SystemConfigName, normalized)
		}
	}

	return document, nil
}
