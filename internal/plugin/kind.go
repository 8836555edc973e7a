// Package plugin identifies how a named plugin is queried, compared, and repaired.
package plugin

const (
	// SystemConfigName is the plugin name reserved for the system-wide configuration.
	SystemConfigName = "SystemConfig"

	// FieldValue names the current value field of a configuration record.
	FieldValue = "value"
	// FieldDefaultValue names the default value field of a configuration record.
	FieldDefaultValue = "defaultValue"
	// FieldDescription names the description field of a configuration record.
	FieldDescription = "description"
	// FieldName names the record key carried by system configuration entries.
	FieldName = "name"

	configFlagConstant       = "--config"
	systemConfigFlagConstant = "--system-config"
	jsonFlagConstant         = "--json"
	setFlagConstant          = "--set"
	setSystemFlagConstant    = "--set-system"
	ordinaryLabelConstant    = "ordinary"
	systemLabelConstant      = "system"
)

// Kind distinguishes ordinary plugins from the system configuration.
type Kind int

// Supported plugin kinds.
const (
	KindOrdinary Kind = iota
	KindSystem
)

// KindOf resolves the kind for a plugin name.
func KindOf(pluginName string) Kind {
	if pluginName == SystemConfigName {
		return KindSystem
	}
	return KindOrdinary
}

// String returns a short label used in logs.
func (kind Kind) String() string {
	if kind == KindSystem {
		return systemLabelConstant
	}
	return ordinaryLabelConstant
}

// QueryArguments returns the utility arguments that print the live configuration of pluginName as JSON.
func (kind Kind) QueryArguments(pluginName string) []string {
	if kind == KindSystem {
		return []string{systemConfigFlagConstant, jsonFlagConstant, SystemConfigName}
	}
	return []string{configFlagConstant, jsonFlagConstant, pluginName}
}

// SetFlag returns the utility flag that writes a parameter.
func (kind Kind) SetFlag() string {
	if kind == KindSystem {
		return setSystemFlagConstant
	}
	return setFlagConstant
}

// CheckedFields lists the record fields compared between expected and live records, in comparison order.
func (kind Kind) CheckedFields() []string {
	if kind == KindSystem {
		return []string{FieldValue, FieldDefaultValue}
	}
	return []string{FieldValue, FieldDefaultValue, FieldDescription}
}

// AppendsPluginName reports whether remediation commands name the plugin as a trailing argument.
func (kind Kind) AppendsPluginName() bool {
	return kind != KindSystem
}
