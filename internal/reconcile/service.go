package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/tmxaudit/internal/livecfg"
	"github.com/temirov/tmxaudit/internal/manifest"
)

const (
	loaderMissingMessageConstant     = "manifest loader not configured"
	fetcherMissingMessageConstant    = "live configuration fetcher not configured"
	reporterMissingMessageConstant   = "reporter not configured"
	pluginAuditErrorTemplateConstant = "%s: plugin %s: %w"
	manifestAuditedMessageConstant   = "manifest audited"
	pluginAuditedMessageConstant     = "plugin audited"
	parameterMismatchMessageConstant = "parameter mismatch"
	auditCompletedMessageConstant    = "audit completed"
	logFieldManifestPathConstant     = "manifest"
	logFieldPluginNameConstant       = "plugin"
	logFieldPluginKindConstant       = "kind"
	logFieldParameterConstant        = "parameter"
	logFieldReasonConstant           = "reason"
	logFieldFilesConstant            = "files"
	logFieldPluginsConstant          = "plugins"
	logFieldParametersConstant       = "parameters"
	logFieldFailuresConstant         = "failures"
	logFieldWarningsConstant         = "warnings"
)

var (
	// ErrManifestLoaderNotConfigured indicates a missing manifest loader.
	ErrManifestLoaderNotConfigured = errors.New(loaderMissingMessageConstant)
	// ErrFetcherNotConfigured indicates a missing live configuration fetcher.
	ErrFetcherNotConfigured = errors.New(fetcherMissingMessageConstant)
	// ErrReporterNotConfigured indicates a missing reporter.
	ErrReporterNotConfigured = errors.New(reporterMissingMessageConstant)
)

// ManifestLoader reads and validates one manifest file.
type ManifestLoader interface {
	Load(path string) (manifest.Manifest, error)
}

// Service audits manifest files against the live configuration.
type Service struct {
	loader   ManifestLoader
	fetcher  livecfg.Fetcher
	reporter *Reporter
	logger   *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(loader ManifestLoader, fetcher livecfg.Fetcher, reporter *Reporter, logger *zap.Logger) (*Service, error) {
	if loader == nil {
		return nil, ErrManifestLoaderNotConfigured
	}
	if fetcher == nil {
		return nil, ErrFetcherNotConfigured
	}
	if reporter == nil {
		return nil, ErrReporterNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{loader: loader, fetcher: fetcher, reporter: reporter, logger: logger}, nil
}

// Run audits every manifest in order. Findings are reported as they are detected; the first
// load, fetch, or write failure aborts the run and is returned together with the partial summary.
func (service *Service) Run(executionContext context.Context, manifestPaths []string) (Summary, error) {
	summary := Summary{}

	for _, manifestPath := range manifestPaths {
		if contextError := executionContext.Err(); contextError != nil {
			return summary, contextError
		}

		loadedManifest, loadError := service.loader.Load(manifestPath)
		if loadError != nil {
			return summary, loadError
		}

		if auditError := service.auditManifest(executionContext, loadedManifest, &summary); auditError != nil {
			return summary, auditError
		}
		summary.Files++

		service.logger.Debug(manifestAuditedMessageConstant, zap.String(logFieldManifestPathConstant, loadedManifest.Path))
	}

	service.logger.Debug(
		auditCompletedMessageConstant,
		zap.Int(logFieldFilesConstant, summary.Files),
		zap.Int(logFieldPluginsConstant, summary.Plugins),
		zap.Int(logFieldParametersConstant, summary.Parameters),
		zap.Int(logFieldFailuresConstant, summary.Failures),
		zap.Int(logFieldWarningsConstant, summary.Warnings),
	)

	return summary, nil
}

func (service *Service) auditManifest(executionContext context.Context, loadedManifest manifest.Manifest, summary *Summary) error {
	for _, expectedPlugin := range loadedManifest.Plugins {
		liveDocument, fetchError := service.fetcher.FetchLiveConfig(executionContext, expectedPlugin.Name)
		if fetchError != nil {
			return fmt.Errorf(pluginAuditErrorTemplateConstant, loadedManifest.Path, expectedPlugin.Name, fetchError)
		}

		report := AuditPlugin(expectedPlugin, liveDocument)
		for _, remediation := range report.Remediations {
			service.logger.Debug(
				parameterMismatchMessageConstant,
				zap.String(logFieldPluginNameConstant, remediation.PluginName),
				zap.String(logFieldParameterConstant, remediation.Key),
				zap.String(logFieldReasonConstant, remediation.Reason),
			)
		}

		if reportError := service.reporter.Report(report); reportError != nil {
			return reportError
		}
		summary.addReport(report)

		service.logger.Debug(
			pluginAuditedMessageConstant,
			zap.String(logFieldPluginNameConstant, expectedPlugin.Name),
			zap.Stringer(logFieldPluginKindConstant, expectedPlugin.Kind),
			zap.Int(logFieldParametersConstant, report.CheckedParameters),
			zap.Int(logFieldFailuresConstant, len(report.Remediations)),
			zap.Int(logFieldWarningsConstant, len(report.Warnings)),
		)
	}
	return nil
}
