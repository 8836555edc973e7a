package configvalue

// Object is a string-keyed mapping that remembers the order in which keys were first set.
type Object struct {
	keys    []string
	entries map[string]Value
}

// NewObject constructs an empty object.
func NewObject() *Object {
	return &Object{entries: map[string]Value{}}
}

// Set stores the value under key. Re-setting an existing key replaces its value but keeps its position.
func (object *Object) Set(key string, value Value) {
	if object.entries == nil {
		object.entries = map[string]Value{}
	}
	if _, exists := object.entries[key]; !exists {
		object.keys = append(object.keys, key)
	}
	object.entries[key] = value
}

// Get returns the value stored under key.
func (object *Object) Get(key string) (Value, bool) {
	if object == nil {
		return Value{}, false
	}
	value, exists := object.entries[key]
	return value, exists
}

// Has reports whether key is present.
func (object *Object) Has(key string) bool {
	_, exists := object.Get(key)
	return exists
}

// Keys returns the keys in insertion order.
func (object *Object) Keys() []string {
	if object == nil {
		return nil
	}
	duplicatedKeys := make([]string, len(object.keys))
	copy(duplicatedKeys, object.keys)
	return duplicatedKeys
}

// Len returns the number of keys.
func (object *Object) Len() int {
	if object == nil {
		return 0
	}
	return len(object.keys)
}

func (object *Object) equal(other *Object) bool {
	if object.Len() != other.Len() {
		return false
	}
	for _, key := range object.Keys() {
		otherValue, exists := other.Get(key)
		if !exists {
			return false
		}
		value, _ := object.Get(key)
		if !value.Equal(otherValue) {
			return false
		}
	}
	return true
}
