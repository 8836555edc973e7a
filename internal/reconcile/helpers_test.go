package reconcile_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/tmxaudit/internal/configvalue"
	"github.com/temirov/tmxaudit/internal/execshell"
	"github.com/temirov/tmxaudit/internal/manifest"
)

const testManifestPathConstant = "expected.json"

func mapFileReader(files map[string]string) manifest.FileReader {
	return func(path string) ([]byte, error) {
		content, exists := files[path]
		if !exists {
			return nil, os.ErrNotExist
		}
		return []byte(content), nil
	}
}

func loadTestManifest(testInstance *testing.T, content string) manifest.Manifest {
	testInstance.Helper()
	loader := manifest.NewLoader(mapFileReader(map[string]string{testManifestPathConstant: content}))
	loadedManifest, loadError := loader.Load(testManifestPathConstant)
	require.NoError(testInstance, loadError)
	return loadedManifest
}

func parseTestDocument(testInstance *testing.T, content string) configvalue.Value {
	testInstance.Helper()
	document, parseError := configvalue.Parse([]byte(content))
	require.NoError(testInstance, parseError)
	return document
}

var errStubPluginUnknown = errors.New("stub fetcher: unknown plugin")

type stubFetcher struct {
	documents      map[string]string
	fetchErrors    map[string]error
	requestedNames []string
}

func (fetcher *stubFetcher) FetchLiveConfig(_ context.Context, pluginName string) (configvalue.Value, error) {
	fetcher.requestedNames = append(fetcher.requestedNames, pluginName)
	if fetchError, exists := fetcher.fetchErrors[pluginName]; exists {
		return configvalue.Value{}, fetchError
	}
	content, exists := fetcher.documents[pluginName]
	if !exists {
		return configvalue.Value{}, errStubPluginUnknown
	}
	if len(content) == 0 {
		return configvalue.ObjectValue(nil), nil
	}
	return configvalue.Parse([]byte(content))
}

type staticOutputExecutor struct {
	standardOutput    string
	recordedArguments []string
}

func (executor *staticOutputExecutor) Execute(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.recordedArguments = append([]string{}, command.Details.Arguments...)
	return execshell.ExecutionResult{StandardOutput: executor.standardOutput}, nil
}
