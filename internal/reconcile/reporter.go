package reconcile

import (
	"errors"
	"fmt"
	"io"

	"github.com/temirov/tmxaudit/internal/utils"
)

const (
	reportLineTemplateConstant       = "%s\n"
	reportWriterMissingMessage       = "report writer not configured"
	reportWriteErrorTemplateConstant = "unable to write report: %w"
)

// ErrReportWriterNotConfigured indicates that NewReporter received a nil writer.
var ErrReportWriterNotConfigured = errors.New(reportWriterMissingMessage)

// Reporter writes remediation commands and warnings, one per line, flushing after every write.
type Reporter struct {
	writer  io.Writer
	utility string
}

// NewReporter wraps writer so each report line becomes visible immediately.
func NewReporter(writer io.Writer, utility string) (*Reporter, error) {
	if writer == nil {
		return nil, ErrReportWriterNotConfigured
	}
	return &Reporter{writer: utils.NewFlushingWriter(writer), utility: utility}, nil
}

// Report writes remediations before warnings, preserving detection order within each group.
func (reporter *Reporter) Report(report PluginReport) error {
	for _, remediation := range report.Remediations {
		if writeError := reporter.writeLine(remediation.CommandLine(reporter.utility)); writeError != nil {
			return writeError
		}
	}
	for _, warning := range report.Warnings {
		if writeError := reporter.writeLine(warning.Line()); writeError != nil {
			return writeError
		}
	}
	return nil
}

func (reporter *Reporter) writeLine(line string) error {
	if _, writeError := fmt.Fprintf(reporter.writer, reportLineTemplateConstant, line); writeError != nil {
		return fmt.Errorf(reportWriteErrorTemplateConstant, writeError)
	}
	return nil
}
