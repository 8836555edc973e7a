package reconcile_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/tmxaudit/internal/livecfg"
	"github.com/temirov/tmxaudit/internal/manifest"
	"github.com/temirov/tmxaudit/internal/reconcile"
)

const (
	testFirstManifestPathConstant   = "first.json"
	testSecondManifestPathConstant  = "second.yaml"
	testMissingManifestPathConstant = "missing.json"
)

func newTestService(testInstance *testing.T, files map[string]string, fetcher *stubFetcher, logger *zap.Logger) (*reconcile.Service, *bytes.Buffer) {
	testInstance.Helper()
	outputBuffer := &bytes.Buffer{}
	reporter, reporterError := reconcile.NewReporter(outputBuffer, testUtilityConstant)
	require.NoError(testInstance, reporterError)

	service, serviceError := reconcile.NewService(manifest.NewLoader(mapFileReader(files)), fetcher, reporter, logger)
	require.NoError(testInstance, serviceError)
	return service, outputBuffer
}

func TestNewServiceValidation(testInstance *testing.T) {
	reporter, reporterError := reconcile.NewReporter(&bytes.Buffer{}, testUtilityConstant)
	require.NoError(testInstance, reporterError)
	loader := manifest.NewLoader(mapFileReader(nil))

	testCases := []struct {
		name          string
		loader        reconcile.ManifestLoader
		fetcher       livecfg.Fetcher
		reporter      *reconcile.Reporter
		expectedError error
	}{
		{name: "loader_validation", fetcher: &stubFetcher{}, reporter: reporter, expectedError: reconcile.ErrManifestLoaderNotConfigured},
		{name: "fetcher_validation", loader: loader, reporter: reporter, expectedError: reconcile.ErrFetcherNotConfigured},
		{name: "reporter_validation", loader: loader, fetcher: &stubFetcher{}, expectedError: reconcile.ErrReporterNotConfigured},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, creationError := reconcile.NewService(testCase.loader, testCase.fetcher, testCase.reporter, nil)
			require.ErrorIs(testInstance, creationError, testCase.expectedError)
		})
	}
}

func TestServiceRunAccumulatesAcrossManifests(testInstance *testing.T) {
	files := map[string]string{
		testFirstManifestPathConstant: `{
			"Foo": {"timeout": {"value": 30, "defaultValue": 10}},
			"SystemConfig": [{"name": "logLevel", "value": "info", "defaultValue": "warn"}]
		}`,
		testSecondManifestPathConstant: "Bar:\n  retries:\n    value: 3\n    defaultValue: 1\n    description: Retry count\n",
	}
	fetcher := &stubFetcher{documents: map[string]string{
		"Foo":          `{"Foo": {"timeout": {"value": 60, "defaultValue": 10}, "legacy": {}}}`,
		"SystemConfig": `{"SystemConfig": {"logLevel": {"name": "logLevel", "value": "info", "defaultValue": "warn"}}}`,
		"Bar":          ``,
	}}

	observerCore, observerLogs := observer.New(zap.DebugLevel)
	service, outputBuffer := newTestService(testInstance, files, fetcher, zap.New(observerCore))

	summary, runError := service.Run(context.Background(), []string{testFirstManifestPathConstant, testSecondManifestPathConstant})
	require.NoError(testInstance, runError)

	require.Equal(testInstance, reconcile.Summary{Files: 2, Plugins: 3, Parameters: 3, Failures: 2, Warnings: 1}, summary)
	require.Equal(testInstance, []string{"Foo", "SystemConfig", "Bar"}, fetcher.requestedNames)
	require.Equal(
		testInstance,
		"tmxctl --set --key \"timeout\" --value 30 --defaultValue 10 --description \"\" \"Foo\"\n"+
			"WARNING: key legacy not expected for plugin \"Foo\"\n"+
			"tmxctl --set --key \"retries\" --value 3 --defaultValue 1 --description \"Retry count\" \"Bar\"\n",
		outputBuffer.String(),
	)

	completionEntries := observerLogs.FilterMessage("audit completed").All()
	require.Len(testInstance, completionEntries, 1)
	require.Equal(testInstance, int64(2), completionEntries[0].ContextMap()["failures"])
}

func TestServiceRunMatchingSystemConfiguration(testInstance *testing.T) {
	files := map[string]string{
		testFirstManifestPathConstant: `{"SystemConfig": [{"name": "logLevel", "value": "info", "defaultValue": "warn"}, {"name": "maxThreads", "value": 8, "defaultValue": 4}]}`,
	}
	executor := &staticOutputExecutor{standardOutput: `{"SystemConfig": [{"name": "logLevel", "value": "info", "defaultValue": "warn"}, {"name": "maxThreads", "value": 8, "defaultValue": 4}]}`}
	fetcher, fetcherError := livecfg.NewUtilityFetcher(executor, "")
	require.NoError(testInstance, fetcherError)

	outputBuffer := &bytes.Buffer{}
	reporter, reporterError := reconcile.NewReporter(outputBuffer, testUtilityConstant)
	require.NoError(testInstance, reporterError)
	service, serviceError := reconcile.NewService(manifest.NewLoader(mapFileReader(files)), fetcher, reporter, nil)
	require.NoError(testInstance, serviceError)

	summary, runError := service.Run(context.Background(), []string{testFirstManifestPathConstant})
	require.NoError(testInstance, runError)
	require.Zero(testInstance, summary.Failures)
	require.Equal(testInstance, 2, summary.Parameters)
	require.Empty(testInstance, outputBuffer.String())
	require.Equal(testInstance, []string{"--system-config", "--json", "SystemConfig"}, executor.recordedArguments)
}

func TestServiceRunStopsOnFatalErrors(testInstance *testing.T) {
	fetchFailure := errors.New("tmxctl exited with code 2")

	testCases := []struct {
		name             string
		manifestPaths    []string
		fetchErrors      map[string]error
		expectedError    error
		expectLoadError  bool
		expectedOutput   string
		expectedFailures int
	}{
		{
			name:             "missing_manifest_aborts_after_earlier_findings",
			manifestPaths:    []string{testFirstManifestPathConstant, testMissingManifestPathConstant},
			expectLoadError:  true,
			expectedOutput:   "tmxctl --set --key \"timeout\" --value 30 --defaultValue 10 --description \"\" \"Foo\"\n",
			expectedFailures: 1,
		},
		{
			name:          "fetch_failure_aborts",
			manifestPaths: []string{testFirstManifestPathConstant},
			fetchErrors:   map[string]error{"Foo": fetchFailure},
			expectedError: fetchFailure,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			files := map[string]string{
				testFirstManifestPathConstant: `{"Foo": {"timeout": {"value": 30, "defaultValue": 10}}}`,
			}
			fetcher := &stubFetcher{
				documents:   map[string]string{"Foo": `{}`},
				fetchErrors: testCase.fetchErrors,
			}
			service, outputBuffer := newTestService(testInstance, files, fetcher, nil)

			summary, runError := service.Run(context.Background(), testCase.manifestPaths)
			require.Error(testInstance, runError)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, runError, testCase.expectedError)
				require.Contains(testInstance, runError.Error(), testFirstManifestPathConstant)
			}
			if testCase.expectLoadError {
				var loadError manifest.LoadError
				require.ErrorAs(testInstance, runError, &loadError)
				require.Equal(testInstance, testMissingManifestPathConstant, loadError.Path)
			}
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
			require.Equal(testInstance, testCase.expectedFailures, summary.Failures)
		})
	}
}

func TestServiceRunHonorsCancellation(testInstance *testing.T) {
	service, _ := newTestService(testInstance, map[string]string{}, &stubFetcher{}, nil)

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, runError := service.Run(cancelledContext, []string{testFirstManifestPathConstant})
	require.ErrorIs(testInstance, runError, context.Canceled)
}
