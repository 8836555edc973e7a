package configvalue

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	yamlNullTagConstant                    = "!!null"
	yamlBoolTagConstant                    = "!!bool"
	yamlIntTagConstant                     = "!!int"
	yamlFloatTagConstant                   = "!!float"
	yamlNodeDecodeErrorTemplateConstant    = "line %d: %w"
	yamlUnsupportedKindTemplateConstant    = "line %d: unsupported YAML node kind %d"
	yamlNonScalarKeyTemplateConstant       = "line %d: mapping key is not a scalar"
	yamlNonFiniteNumberTemplateConstant    = "line %d: number %q is not finite"
	yamlMissingAliasTemplateConstant       = "line %d: alias has no target"
	yamlDocumentParseErrorTemplateConstant = "invalid YAML: %w"
)

var errYAMLEmptyDocument = errors.New("empty YAML document")

// ParseYAML decodes a YAML document into a Value, preserving mapping key order.
func ParseYAML(data []byte) (Value, error) {
	var document yaml.Node
	if unmarshalError := yaml.Unmarshal(data, &document); unmarshalError != nil {
		return Value{}, fmt.Errorf(yamlDocumentParseErrorTemplateConstant, unmarshalError)
	}
	if document.Kind == 0 {
		return Value{}, fmt.Errorf(yamlDocumentParseErrorTemplateConstant, errYAMLEmptyDocument)
	}
	return FromYAMLNode(&document)
}

// FromYAMLNode converts a yaml.v3 node tree into a Value.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(node.Content[0])
	case yaml.MappingNode:
		object := NewObject()
		for contentIndex := 0; contentIndex+1 < len(node.Content); contentIndex += 2 {
			keyNode := node.Content[contentIndex]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf(yamlNonScalarKeyTemplateConstant, keyNode.Line)
			}
			memberValue, memberError := FromYAMLNode(node.Content[contentIndex+1])
			if memberError != nil {
				return Value{}, memberError
			}
			object.Set(keyNode.Value, memberValue)
		}
		return ObjectValue(object), nil
	case yaml.SequenceNode:
		elements := make([]Value, 0, len(node.Content))
		for _, elementNode := range node.Content {
			element, elementError := FromYAMLNode(elementNode)
			if elementError != nil {
				return Value{}, elementError
			}
			elements = append(elements, element)
		}
		return Value{kind: KindArray, elements: elements}, nil
	case yaml.AliasNode:
		if node.Alias == nil {
			return Value{}, fmt.Errorf(yamlMissingAliasTemplateConstant, node.Line)
		}
		return FromYAMLNode(node.Alias)
	case yaml.ScalarNode:
		return scalarFromYAMLNode(node)
	default:
		return Value{}, fmt.Errorf(yamlUnsupportedKindTemplateConstant, node.Line, node.Kind)
	}
}

func scalarFromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case yamlNullTagConstant:
		return Null(), nil
	case yamlBoolTagConstant:
		var boolean bool
		if decodeError := node.Decode(&boolean); decodeError != nil {
			return Value{}, fmt.Errorf(yamlNodeDecodeErrorTemplateConstant, node.Line, decodeError)
		}
		return Bool(boolean), nil
	case yamlIntTagConstant:
		var integer int64
		if decodeError := node.Decode(&integer); decodeError != nil {
			return Value{}, fmt.Errorf(yamlNodeDecodeErrorTemplateConstant, node.Line, decodeError)
		}
		return Number(strconv.FormatInt(integer, 10)), nil
	case yamlFloatTagConstant:
		var floating float64
		if decodeError := node.Decode(&floating); decodeError != nil {
			return Value{}, fmt.Errorf(yamlNodeDecodeErrorTemplateConstant, node.Line, decodeError)
		}
		if math.IsInf(floating, 0) || math.IsNaN(floating) {
			return Value{}, fmt.Errorf(yamlNonFiniteNumberTemplateConstant, node.Line, node.Value)
		}
		return Number(strconv.FormatFloat(floating, 'g', -1, 64)), nil
	default:
		return String(node.Value), nil
	}
}
