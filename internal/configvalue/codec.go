package configvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	jsonDecodeErrorTemplateConstant         = "invalid JSON: %w"
	unexpectedDelimiterTemplateConstant     = "unexpected delimiter %q"
	unexpectedTokenTemplateConstant         = "unexpected token %v"
	nonStringObjectKeyTemplateConstant      = "object key %v is not a string"
	trailingDataMessageConstant             = "trailing data after JSON value"
	objectOpeningDelimiterConstant          = json.Delim('{')
	arrayOpeningDelimiterConstant           = json.Delim('[')
	encodedNullLiteralConstant              = "null"
	encodedTrueLiteralConstant              = "true"
	encodedFalseLiteralConstant             = "false"
	encodedMemberSeparatorConstant          = ','
	encodedKeyValueSeparatorConstant        = ':'
	encodedObjectStartConstant              = '{'
	encodedObjectEndConstant                = '}'
	encodedArrayStartConstant               = '['
	encodedArrayEndConstant                 = ']'
	unsupportedEncodingKindTemplateConstant = "cannot encode value of kind %s"
)

// ErrTrailingData indicates that input held more than one JSON value.
var ErrTrailingData = errors.New(trailingDataMessageConstant)

// Parse decodes a single JSON document, preserving object key order and number literals.
func Parse(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, decodeError := decodeValue(decoder)
	if decodeError != nil {
		return Value{}, fmt.Errorf(jsonDecodeErrorTemplateConstant, decodeError)
	}

	if _, trailingError := decoder.Token(); !errors.Is(trailingError, io.EOF) {
		return Value{}, fmt.Errorf(jsonDecodeErrorTemplateConstant, ErrTrailingData)
	}

	return value, nil
}

func decodeValue(decoder *json.Decoder) (Value, error) {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		if errors.Is(tokenError, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, tokenError
	}

	switch typedToken := token.(type) {
	case json.Delim:
		switch typedToken {
		case objectOpeningDelimiterConstant:
			return decodeObject(decoder)
		case arrayOpeningDelimiterConstant:
			return decodeArray(decoder)
		default:
			return Value{}, fmt.Errorf(unexpectedDelimiterTemplateConstant, typedToken.String())
		}
	case bool:
		return Bool(typedToken), nil
	case json.Number:
		return Number(typedToken.String()), nil
	case string:
		return String(typedToken), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf(unexpectedTokenTemplateConstant, typedToken)
	}
}

func decodeObject(decoder *json.Decoder) (Value, error) {
	object := NewObject()
	for decoder.More() {
		keyToken, keyError := decoder.Token()
		if keyError != nil {
			return Value{}, keyError
		}
		key, isString := keyToken.(string)
		if !isString {
			return Value{}, fmt.Errorf(nonStringObjectKeyTemplateConstant, keyToken)
		}

		memberValue, memberError := decodeValue(decoder)
		if memberError != nil {
			return Value{}, memberError
		}
		object.Set(key, memberValue)
	}

	if _, closingError := decoder.Token(); closingError != nil {
		return Value{}, closingError
	}

	return ObjectValue(object), nil
}

func decodeArray(decoder *json.Decoder) (Value, error) {
	elements := []Value{}
	for decoder.More() {
		element, elementError := decodeValue(decoder)
		if elementError != nil {
			return Value{}, elementError
		}
		elements = append(elements, element)
	}

	if _, closingError := decoder.Token(); closingError != nil {
		return Value{}, closingError
	}

	return Value{kind: KindArray, elements: elements}, nil
}

// MarshalJSON renders the value as compact JSON with object keys in insertion order.
func (value Value) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	if encodeError := encodeValue(&buffer, value); encodeError != nil {
		return nil, encodeError
	}
	return buffer.Bytes(), nil
}

// Encode returns the compact JSON text of the value. Strings are quoted and escaped, non-ASCII text is kept as UTF-8.
func (value Value) Encode() string {
	encoded, encodeError := value.MarshalJSON()
	if encodeError != nil {
		return encodedNullLiteralConstant
	}
	return string(encoded)
}

// EncodeString returns the JSON string literal for text.
func EncodeString(text string) string {
	var buffer bytes.Buffer
	encodeStringTo(&buffer, text)
	return buffer.String()
}

func encodeValue(buffer *bytes.Buffer, value Value) error {
	switch value.kind {
	case KindNull:
		buffer.WriteString(encodedNullLiteralConstant)
	case KindBool:
		if value.boolean {
			buffer.WriteString(encodedTrueLiteralConstant)
		} else {
			buffer.WriteString(encodedFalseLiteralConstant)
		}
	case KindNumber:
		buffer.WriteString(value.text)
	case KindString:
		encodeStringTo(buffer, value.text)
	case KindArray:
		buffer.WriteByte(encodedArrayStartConstant)
		for elementIndex, element := range value.elements {
			if elementIndex > 0 {
				buffer.WriteByte(encodedMemberSeparatorConstant)
			}
			if encodeError := encodeValue(buffer, element); encodeError != nil {
				return encodeError
			}
		}
		buffer.WriteByte(encodedArrayEndConstant)
	case KindObject:
		buffer.WriteByte(encodedObjectStartConstant)
		for keyIndex, key := range value.object.Keys() {
			if keyIndex > 0 {
				buffer.WriteByte(encodedMemberSeparatorConstant)
			}
			encodeStringTo(buffer, key)
			buffer.WriteByte(encodedKeyValueSeparatorConstant)
			memberValue, _ := value.object.Get(key)
			if encodeError := encodeValue(buffer, memberValue); encodeError != nil {
				return encodeError
			}
		}
		buffer.WriteByte(encodedObjectEndConstant)
	default:
		return fmt.Errorf(unsupportedEncodingKindTemplateConstant, value.kind)
	}
	return nil
}

func encodeStringTo(buffer *bytes.Buffer, text string) {
	var encoded bytes.Buffer
	encoder := json.NewEncoder(&encoded)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(text)
	buffer.Write(bytes.TrimSuffix(encoded.Bytes(), []byte("\n")))
}
