package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/tmxaudit/internal/configvalue"
	"github.com/temirov/tmxaudit/internal/plugin"
)

const (
	yamlExtensionConstant                 = ".yaml"
	ymlExtensionConstant                  = ".yml"
	loadErrorTemplateConstant             = "manifest %s: %v"
	readErrorTemplateConstant             = "unable to read manifest: %w"
	topLevelShapeTemplateConstant         = "top-level value is a %s, not an object"
	pluginShapeTemplateConstant           = "plugin %q is a %s, not an object"
	parameterShapeTemplateConstant        = "parameter %q of plugin %q is a %s, not an object"
	systemConfigNormalizeTemplateConstant = "plugin %q: %w"
)

// Manifest holds the expected configuration read from one file.
type Manifest struct {
	Path    string
	Plugins []PluginConfiguration
}

// PluginConfiguration holds the expected parameters of one plugin in document order.
type PluginConfiguration struct {
	Name       string
	Kind       plugin.Kind
	Parameters *configvalue.Object
}

// LoadError reports a manifest that could not be read or interpreted.
type LoadError struct {
	Path string
	Err  error
}

// Error describes the failure.
func (loadError LoadError) Error() string {
	return fmt.Sprintf(loadErrorTemplateConstant, loadError.Path, loadError.Err)
}

// Unwrap exposes the underlying failure.
func (loadError LoadError) Unwrap() error {
	return loadError.Err
}

// FileReader reads whole files.
type FileReader func(path string) ([]byte, error)

// Loader reads and interprets manifest files.
type Loader struct {
	readFile FileReader
}

// NewLoader constructs a Loader. A nil reader falls back to os.ReadFile.
func NewLoader(readFile FileReader) *Loader {
	if readFile == nil {
		readFile = os.ReadFile
	}
	return &Loader{readFile: readFile}
}

// Load reads the manifest at path. Files with a .yaml or .yml extension are decoded as YAML, all others as JSON.
func (loader *Loader) Load(path string) (Manifest, error) {
	content, readError := loader.readFile(path)
	if readError != nil {
		return Manifest{}, LoadError{Path: path, Err: fmt.Errorf(readErrorTemplateConstant, readError)}
	}

	document, parseError := parseDocument(path, content)
	if parseError != nil {
		return Manifest{}, LoadError{Path: path, Err: parseError}
	}

	plugins, interpretError := interpretDocument(document)
	if interpretError != nil {
		return Manifest{}, LoadError{Path: path, Err: interpretError}
	}

	return Manifest{Path: path, Plugins: plugins}, nil
}

func parseDocument(path string, content []byte) (configvalue.Value, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case yamlExtensionConstant, ymlExtensionConstant:
		return configvalue.ParseYAML(content)
	default:
		return configvalue.Parse(content)
	}
}

func interpretDocument(document configvalue.Value) ([]PluginConfiguration, error) {
	topLevel, isObject := document.AsObject()
	if !isObject {
		return nil, fmt.Errorf(topLevelShapeTemplateConstant, document.Kind())
	}

	plugins := make([]PluginConfiguration, 0, topLevel.Len())
	for _, pluginName := range topLevel.Keys() {
		pluginValue, _ := topLevel.Get(pluginName)
		kind := plugin.KindOf(pluginName)

		if kind == plugin.KindSystem {
			normalizedValue, normalizeError := NormalizeSystemConfig(pluginValue)
			if normalizeError != nil {
				return nil, fmt.Errorf(systemConfigNormalizeTemplateConstant, pluginName, normalizeError)
			}
			pluginValue = normalizedValue
		}

		parameters, isParameterObject := pluginValue.AsObject()
		if !isParameterObject {
			return nil, fmt.Errorf(pluginShapeTemplateConstant, pluginName, pluginValue.Kind())
		}

		for _, parameterName := range parameters.Keys() {
			record, _ := parameters.Get(parameterName)
			if _, isRecordObject := record.AsObject(); !isRecordObject {
				return nil, fmt.Errorf(parameterShapeTemplateConstant, parameterName, pluginName, record.Kind())
			}
		}

		plugins = append(plugins, PluginConfiguration{Name: pluginName, Kind: kind, Parameters: parameters})
	}

	return plugins, nil
}
