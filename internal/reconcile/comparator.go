package reconcile

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/temirov/tmxaudit/internal/configvalue"
	"github.com/temirov/tmxaudit/internal/manifest"
	"github.com/temirov/tmxaudit/internal/plugin"
)

// AuditPlugin compares the expected parameters of one plugin with the live configuration document.
//
// A parameter yields one remediation when it is missing from the live document or when the first
// checked field differs; later fields are not inspected. Live parameters missing from the manifest
// yield warnings. No warnings are produced when the plugin itself is absent from the live document.
func AuditPlugin(expected manifest.PluginConfiguration, liveDocument configvalue.Value) PluginReport {
	report := PluginReport{PluginName: expected.Name}

	liveParameters, pluginPresent := liveParametersOf(liveDocument, expected.Name)
	checkedFields := expected.Kind.CheckedFields()

	for _, parameterName := range expected.Parameters.Keys() {
		report.CheckedParameters++
		expectedRecord, _ := expected.Parameters.Get(parameterName)

		if !pluginPresent {
			report.Remediations = append(report.Remediations, newRemediation(expected, parameterName, expectedRecord, mismatchReasonPluginMissing))
			continue
		}

		liveRecord, parameterPresent := liveParameters.Get(parameterName)
		if !parameterPresent {
			report.Remediations = append(report.Remediations, newRemediation(expected, parameterName, expectedRecord, mismatchReasonParameterMissing))
			continue
		}

		if differingField, differs := firstDifferingField(checkedFields, expectedRecord, liveRecord); differs {
			report.Remediations = append(report.Remediations, newRemediation(expected, parameterName, expectedRecord, mismatchReasonFieldDiffersPrefix+differingField))
		}
	}

	if !pluginPresent {
		return report
	}

	expectedKeys := mapset.NewThreadUnsafeSet(expected.Parameters.Keys()...)
	for _, liveKey := range liveParameters.Keys() {
		if !expectedKeys.Contains(liveKey) {
			report.Warnings = append(report.Warnings, Warning{PluginName: expected.Name, Key: liveKey})
		}
	}

	return report
}

// liveParametersOf returns the parameter mapping of pluginName. A present but non-object entry is treated as an empty mapping.
func liveParametersOf(liveDocument configvalue.Value, pluginName string) (*configvalue.Object, bool) {
	documentObject, isObject := liveDocument.AsObject()
	if !isObject {
		return nil, false
	}

	pluginValue, present := documentObject.Get(pluginName)
	if !present {
		return nil, false
	}

	parameters, isParameterObject := pluginValue.AsObject()
	if !isParameterObject {
		return configvalue.NewObject(), true
	}
	return parameters, true
}

func firstDifferingField(checkedFields []string, expectedRecord configvalue.Value, liveRecord configvalue.Value) (string, bool) {
	expectedFields, _ := expectedRecord.AsObject()
	liveFields, _ := liveRecord.AsObject()

	for _, fieldName := range checkedFields {
		if !fieldsEqual(expectedFields, liveFields, fieldName) {
			return fieldName, true
		}
	}
	return "", false
}

// fieldsEqual treats a field absent from both records as equal and a field present on one side only as different.
func fieldsEqual(expectedFields *configvalue.Object, liveFields *configvalue.Object, fieldName string) bool {
	expectedValue, expectedPresent := expectedFields.Get(fieldName)
	liveValue, livePresent := liveFields.Get(fieldName)
	if expectedPresent != livePresent {
		return false
	}
	if !expectedPresent {
		return true
	}
	return expectedValue.Equal(liveValue)
}

func newRemediation(expected manifest.PluginConfiguration, parameterName string, expectedRecord configvalue.Value, reason string) Remediation {
	recordFields, _ := expectedRecord.AsObject()

	value, _ := recordFields.Get(plugin.FieldValue)
	defaultValue, _ := recordFields.Get(plugin.FieldDefaultValue)
	description, hasDescription := recordFields.Get(plugin.FieldDescription)
	if !hasDescription {
		description = configvalue.String("")
	}

	return Remediation{
		Kind:         expected.Kind,
		PluginName:   expected.Name,
		Key:          parameterName,
		Value:        value,
		DefaultValue: defaultValue,
		Description:  description,
		Reason:       reason,
	}
}
