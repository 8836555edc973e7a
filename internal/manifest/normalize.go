package manifest

import (
	"errors"
	"fmt"

	"github.com/temirov/tmxaudit/internal/configvalue"
	"github.com/temirov/tmxaudit/internal/plugin"
)

const (
	systemRecordNotObjectTemplateConstant   = "system configuration entry %d is a %s, not an object"
	systemRecordMissingNameTemplateConstant = "system configuration entry %d has no %q field"
	systemConfigShapeTemplateConstant       = "system configuration is a %s; expected a sequence of records"
)

// ErrInvalidSystemConfig reports a SystemConfig payload that cannot be normalized.
var ErrInvalidSystemConfig = errors.New("invalid system configuration")

// NormalizeSystemConfig rebuilds a sequence of named records into a mapping keyed by each record's name.
// Later records replace earlier records with the same name. An object is returned unchanged.
func NormalizeSystemConfig(raw configvalue.Value) (configvalue.Value, error) {
	if _, isObject := raw.AsObject(); isObject {
		return raw, nil
	}

	records, isArray := raw.AsArray()
	if !isArray {
		return configvalue.Value{}, fmt.Errorf("%w: "+systemConfigShapeTemplateConstant, ErrInvalidSystemConfig, raw.Kind())
	}

	normalized := configvalue.NewObject()
	for recordIndex, record := range records {
		recordObject, isRecordObject := record.AsObject()
		if !isRecordObject {
			return configvalue.Value{}, fmt.Errorf("%w: "+systemRecordNotObjectTemplateConstant, ErrInvalidSystemConfig, recordIndex, record.Kind())
		}

		nameValue, hasName := recordObject.Get(plugin.FieldName)
		if !hasName {
			return configvalue.Value{}, fmt.Errorf("%w: "+systemRecordMissingNameTemplateConstant, ErrInvalidSystemConfig, recordIndex, plugin.FieldName)
		}

		normalized.Set(recordKey(nameValue), record)
	}

	return configvalue.ObjectValue(normalized), nil
}

func recordKey(nameValue configvalue.Value) string {
	if name, isString := nameValue.AsString(); isString {
		return name
	}
	return nameValue.Encode()
}
