package configvalue

import (
	"math/big"
)

// Kind enumerates the variants a Value can hold.
type Kind int

// Supported value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

const (
	kindNullLabelConstant    = "null"
	kindBoolLabelConstant    = "bool"
	kindNumberLabelConstant  = "number"
	kindStringLabelConstant  = "string"
	kindArrayLabelConstant   = "array"
	kindObjectLabelConstant  = "object"
	kindUnknownLabelConstant = "unknown"
)

// String returns the lowercase label of the kind.
func (kind Kind) String() string {
	switch kind {
	case KindNull:
		return kindNullLabelConstant
	case KindBool:
		return kindBoolLabelConstant
	case KindNumber:
		return kindNumberLabelConstant
	case KindString:
		return kindStringLabelConstant
	case KindArray:
		return kindArrayLabelConstant
	case KindObject:
		return kindObjectLabelConstant
	default:
		return kindUnknownLabelConstant
	}
}

// Value holds one configuration payload. The zero Value is null.
type Value struct {
	kind     Kind
	boolean  bool
	text     string
	elements []Value
	object   *Object
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool wraps a boolean.
func Bool(boolean bool) Value {
	return Value{kind: KindBool, boolean: boolean}
}

// Number wraps a numeric literal such as "30" or "1.5e3". The literal is kept verbatim for encoding.
func Number(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// String wraps a string.
func String(text string) Value {
	return Value{kind: KindString, text: text}
}

// Array wraps a sequence of values.
func Array(elements ...Value) Value {
	duplicatedElements := make([]Value, len(elements))
	copy(duplicatedElements, elements)
	return Value{kind: KindArray, elements: duplicatedElements}
}

// ObjectValue wraps an ordered object. A nil object yields an empty one.
func ObjectValue(object *Object) Value {
	if object == nil {
		object = NewObject()
	}
	return Value{kind: KindObject, object: object}
}

// Kind reports the variant held by the value.
func (value Value) Kind() Kind {
	return value.kind
}

// IsNull reports whether the value is null.
func (value Value) IsNull() bool {
	return value.kind == KindNull
}

// AsBool returns the boolean payload.
func (value Value) AsBool() (bool, bool) {
	if value.kind != KindBool {
		return false, false
	}
	return value.boolean, true
}

// AsString returns the string payload.
func (value Value) AsString() (string, bool) {
	if value.kind != KindString {
		return "", false
	}
	return value.text, true
}

// NumberLiteral returns the literal text of a number.
func (value Value) NumberLiteral() (string, bool) {
	if value.kind != KindNumber {
		return "", false
	}
	return value.text, true
}

// AsArray returns the elements of an array.
func (value Value) AsArray() ([]Value, bool) {
	if value.kind != KindArray {
		return nil, false
	}
	return value.elements, true
}

// AsObject returns the object payload.
func (value Value) AsObject() (*Object, bool) {
	if value.kind != KindObject {
		return nil, false
	}
	return value.object, true
}

// Equal reports structural equality. Object key order is ignored and numbers compare by exact decimal value.
func (value Value) Equal(other Value) bool {
	if value.kind != other.kind {
		return false
	}

	switch value.kind {
	case KindNull:
		return true
	case KindBool:
		return value.boolean == other.boolean
	case KindString:
		return value.text == other.text
	case KindNumber:
		return numbersEqual(value.text, other.text)
	case KindArray:
		if len(value.elements) != len(other.elements) {
			return false
		}
		for elementIndex := range value.elements {
			if !value.elements[elementIndex].Equal(other.elements[elementIndex]) {
				return false
			}
		}
		return true
	case KindObject:
		return value.object.equal(other.object)
	default:
		return false
	}
}

func numbersEqual(firstLiteral string, secondLiteral string) bool {
	if firstLiteral == secondLiteral {
		return true
	}
	firstNumber, firstParsed := new(big.Rat).SetString(firstLiteral)
	if !firstParsed {
		return false
	}
	secondNumber, secondParsed := new(big.Rat).SetString(secondLiteral)
	if !secondParsed {
		return false
	}
	return firstNumber.Cmp(secondNumber) == 0
}
