package livecfg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/tmxaudit/internal/execshell"
	"github.com/temirov/tmxaudit/internal/livecfg"
	"github.com/temirov/tmxaudit/internal/manifest"
	"github.com/temirov/tmxaudit/internal/plugin"
)

type stubCommandExecutor struct {
	result           execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (executor *stubCommandExecutor) Execute(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, command)
	return executor.result, executor.executionError
}

func TestNewUtilityFetcherValidation(testInstance *testing.T) {
	_, creationError := livecfg.NewUtilityFetcher(nil, "")
	require.ErrorIs(testInstance, creationError, livecfg.ErrExecutorNotConfigured)
}

func TestUtilityFetcherFetchLiveConfig(testInstance *testing.T) {
	testCases := []struct {
		name              string
		utility           execshell.CommandName
		pluginName        string
		standardOutput    string
		expectedCommand   execshell.CommandName
		expectedArguments []string
		expectedDocument  string
	}{
		{
			name:              "ordinary_plugin",
			pluginName:        "Foo",
			standardOutput:    `{"Foo": {"timeout": {"value": 60, "defaultValue": 10}}}`,
			expectedCommand:   execshell.CommandConfigurationUtility,
			expectedArguments: []string{"--config", "--json", "Foo"},
			expectedDocument:  `{"Foo":{"timeout":{"value":60,"defaultValue":10}}}`,
		},
		{
			name:              "empty_output_is_empty_object",
			utility:           "/opt/tmx/bin/tmxctl",
			pluginName:        "Foo",
			standardOutput:    "",
			expectedCommand:   "/opt/tmx/bin/tmxctl",
			expectedArguments: []string{"--config", "--json", "Foo"},
			expectedDocument:  `{}`,
		},
		{
			name:              "system_configuration_rebuilt",
			pluginName:        "SystemConfig",
			standardOutput:    `{"SystemConfig": [{"name": "logLevel", "value": "info", "defaultValue": "warn"}]}`,
			expectedCommand:   execshell.CommandConfigurationUtility,
			expectedArguments: []string{"--system-config", "--json", "SystemConfig"},
			expectedDocument:  `{"SystemConfig":{"logLevel":{"name":"logLevel","value":"info","defaultValue":"warn"}}}`,
		},
		{
			name:              "system_configuration_absent",
			pluginName:        "SystemConfig",
			standardOutput:    `{}`,
			expectedCommand:   execshell.CommandConfigurationUtility,
			expectedArguments: []string{"--system-config", "--json", "SystemConfig"},
			expectedDocument:  `{}`,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubCommandExecutor{result: execshell.ExecutionResult{StandardOutput: testCase.standardOutput}}
			fetcher, creationError := livecfg.NewUtilityFetcher(executor, testCase.utility)
			require.NoError(testInstance, creationError)

			document, fetchError := fetcher.FetchLiveConfig(context.Background(), testCase.pluginName)
			require.NoError(testInstance, fetchError)
			require.Equal(testInstance, testCase.expectedDocument, document.Encode())

			require.Len(testInstance, executor.recordedCommands, 1)
			require.Equal(testInstance, testCase.expectedCommand, executor.recordedCommands[0].Name)
			require.Equal(testInstance, testCase.expectedArguments, executor.recordedCommands[0].Details.Arguments)
			require.Equal(testInstance, &execshell.ConfigurationQuery{PluginName: testCase.pluginName, Kind: plugin.KindOf(testCase.pluginName)}, executor.recordedCommands[0].Query)
		})
	}
}

func TestUtilityFetcherFailures(testInstance *testing.T) {
	commandFailure := execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 1}}

	testCases := []struct {
		name           string
		pluginName     string
		standardOutput string
		executionError error
		expectedError  error
	}{
		{
			name:           "utility_exit_status",
			pluginName:     "Foo",
			executionError: commandFailure,
		},
		{
			name:           "malformed_json",
			pluginName:     "Foo",
			standardOutput: `{"Foo": `,
		},
		{
			name:           "non_object_document",
			pluginName:     "Foo",
			standardOutput: `["Foo"]`,
		},
		{
			name:           "invalid_system_records",
			pluginName:     "SystemConfig",
			standardOutput: `{"SystemConfig": [{"value": 1}]}`,
			expectedError:  manifest.ErrInvalidSystemConfig,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubCommandExecutor{
				result:         execshell.ExecutionResult{StandardOutput: testCase.standardOutput},
				executionError: testCase.executionError,
			}
			fetcher, creationError := livecfg.NewUtilityFetcher(executor, "")
			require.NoError(testInstance, creationError)

			_, fetchError := fetcher.FetchLiveConfig(context.Background(), testCase.pluginName)
			require.Error(testInstance, fetchError)
			if testCase.executionError != nil {
				var typedFailure execshell.CommandFailedError
				require.True(testInstance, errors.As(fetchError, &typedFailure))
			}
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, fetchError, testCase.expectedError)
			}
		})
	}
}
