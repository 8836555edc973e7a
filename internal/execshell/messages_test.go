package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/tmxaudit/internal/plugin"
)

func TestBuildMessagesForPluginConfigurationQuery(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandConfigurationUtility,
		Details: CommandDetails{Arguments: []string{"--config", "--json", "Foo"}},
		Query:   &ConfigurationQuery{PluginName: "Foo", Kind: plugin.KindOrdinary},
	}

	require.Equal(t, "Fetching configuration for plugin Foo", formatter.BuildStartedMessage(command))
	require.Equal(t, "Fetched configuration for plugin Foo", formatter.BuildSuccessMessage(command, ExecutionResult{StandardOutput: "{}"}))
	require.Equal(t, "Plugin Foo reported no configuration", formatter.BuildSuccessMessage(command, ExecutionResult{}))
	require.Equal(t, "Failed to fetch configuration for plugin Foo (exit code 2: no such plugin)", formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 2, StandardError: "no such plugin\n"}))
	require.Equal(t, "Unable to fetch configuration for plugin Foo: boom", formatter.BuildExecutionFailureMessage(command, errors.New("boom")))
}

func TestBuildMessagesForSystemConfigurationQuery(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandConfigurationUtility,
		Details: CommandDetails{Arguments: []string{"--system-config", "--json", "SystemConfig"}},
		Query:   &ConfigurationQuery{PluginName: plugin.SystemConfigName, Kind: plugin.KindSystem},
	}

	require.Equal(t, "Fetching system configuration", formatter.BuildStartedMessage(command))
	require.Equal(t, "System configuration is empty", formatter.BuildSuccessMessage(command, ExecutionResult{}))
	require.Equal(t, "Failed to fetch system configuration (exit code 1)", formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1}))
	require.Equal(t, "Unable to fetch system configuration: unknown error", formatter.BuildExecutionFailureMessage(command, nil))
}

func TestBuildStartedMessageFallsBackToCommandLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandConfigurationUtility,
		Details: CommandDetails{
			Arguments:        []string{"--version"},
			WorkingDirectory: "/opt/tmx",
		},
	}

	require.Equal(t, "Running tmxctl --version (in /opt/tmx)", formatter.BuildStartedMessage(command))
	require.Equal(t, "tmxctl --version (in /opt/tmx) failed with exit code 4", formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 4}))
}

func TestBuildMessagesIgnoreQueryLikeArgumentsWithoutQuery(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandConfigurationUtility,
		Details: CommandDetails{Arguments: []string{"--config", "--json", "Foo"}},
	}

	require.Equal(t, "Running tmxctl --config --json Foo", formatter.BuildStartedMessage(command))
}

func TestBuildMessagesUseQueriedPluginName(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandConfigurationUtility,
		Details: CommandDetails{Arguments: []string{"--config", "--json", "Foo"}},
		Query:   &ConfigurationQuery{PluginName: " ", Kind: plugin.KindOrdinary},
	}

	require.Equal(t, "Fetching configuration for plugin unknown", formatter.BuildStartedMessage(command))
}
