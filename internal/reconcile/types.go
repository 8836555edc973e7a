package reconcile

import (
	"fmt"
	"strings"

	"github.com/temirov/tmxaudit/internal/configvalue"
	"github.com/temirov/tmxaudit/internal/plugin"
)

const (
	keyFlagConstant                  = "--key"
	valueFlagConstant                = "--value"
	defaultValueFlagConstant         = "--defaultValue"
	descriptionFlagConstant          = "--description"
	commandLineSeparatorConstant     = " "
	warningTemplateConstant          = "WARNING: key %s not expected for plugin %s"
	mismatchErrorTemplateConstant    = "%d configuration mismatches detected"
	singleMismatchMessageConstant    = "1 configuration mismatch detected"
	mismatchReasonPluginMissing      = "plugin missing from live configuration"
	mismatchReasonParameterMissing   = "parameter missing from live configuration"
	mismatchReasonFieldDiffersPrefix = "field differs: "
)

// Remediation describes one parameter that must be rewritten to match its manifest record.
type Remediation struct {
	Kind         plugin.Kind
	PluginName   string
	Key          string
	Value        configvalue.Value
	DefaultValue configvalue.Value
	Description  configvalue.Value
	Reason       string
}

// CommandLine renders the utility invocation that applies the expected record.
func (remediation Remediation) CommandLine(utility string) string {
	parts := []string{
		utility,
		remediation.Kind.SetFlag(),
		keyFlagConstant, configvalue.EncodeString(remediation.Key),
		valueFlagConstant, remediation.Value.Encode(),
		defaultValueFlagConstant, remediation.DefaultValue.Encode(),
		descriptionFlagConstant, remediation.Description.Encode(),
	}
	if remediation.Kind.AppendsPluginName() {
		parts = append(parts, configvalue.EncodeString(remediation.PluginName))
	}
	return strings.Join(parts, commandLineSeparatorConstant)
}

// Warning describes a live parameter that no manifest expects.
type Warning struct {
	PluginName string
	Key        string
}

// Line renders the warning text.
func (warning Warning) Line() string {
	return fmt.Sprintf(warningTemplateConstant, warning.Key, configvalue.EncodeString(warning.PluginName))
}

// PluginReport holds the findings for one plugin in the order they were detected.
type PluginReport struct {
	PluginName        string
	CheckedParameters int
	Remediations      []Remediation
	Warnings          []Warning
}

// Summary accumulates counts across plugins and manifest files.
type Summary struct {
	Files      int
	Plugins    int
	Parameters int
	Failures   int
	Warnings   int
}

func (summary *Summary) addReport(report PluginReport) {
	summary.Plugins++
	summary.Parameters += report.CheckedParameters
	summary.Failures += len(report.Remediations)
	summary.Warnings += len(report.Warnings)
}

// MismatchError reports that at least one remediation was emitted. Count becomes the process exit status.
type MismatchError struct {
	Count int
}

// Error describes the mismatch total.
func (mismatchError MismatchError) Error() string {
	if mismatchError.Count == 1 {
		return singleMismatchMessageConstant
	}
	return fmt.Sprintf(mismatchErrorTemplateConstant, mismatchError.Count)
}

// ExitCode returns the process exit status for the mismatch total.
func (mismatchError MismatchError) ExitCode() int {
	return mismatchError.Count
}
