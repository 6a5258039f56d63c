package viteconfig

// Kind identifies the type held by a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindString
	KindRaw
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindRaw:
		return "raw"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "undefined"
	}
}

// Value is one node of the config tree. The zero Value is undefined and is
// skipped when its parent object is rendered.
type Value struct {
	kind  Kind
	text  string
	num   float64
	truth bool
	items []Value
	obj   *Object
}

// String returns a string literal value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Raw returns a value emitted verbatim as source code.
func Raw(code string) Value { return Value{kind: KindRaw, text: code} }

// Number returns a numeric literal value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean literal value.
func Bool(b bool) Value { return Value{kind: KindBool, truth: b} }

// Array returns an array value.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: append([]Value(nil), items...)}
}

// ObjectValue wraps an object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// Text returns the content of a String or Raw value.
func (v Value) Text() string { return v.text }

func (v Value) Float() float64 { return v.num }
func (v Value) Truth() bool    { return v.truth }

// Items returns the elements of an Array value.
func (v Value) Items() []Value { return v.items }

// Object returns the object of an Object value, or nil.
func (v Value) Object() *Object { return v.obj }

// Equal reports whether v and o hold the same tree.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString, KindRaw:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.truth == o.truth
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	default:
		return true
	}
}

// Object is an insertion-ordered set of keyed values.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set stores v under key. An existing key keeps its position.
func (o *Object) Set(key string, v Value) *Object {
	if o.vals == nil {
		o.vals = make(map[string]Value)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
	return o
}

// Get returns the value under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			return
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string { return append([]string(nil), o.keys...) }

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Equal compares keys, order and values.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o.Len() == other.Len()
	}
	if len(o.keys) != len(other.keys) {
		return false
	}
	for i, k := range o.keys {
		if other.keys[i] != k || !o.vals[k].Equal(other.vals[k]) {
			return false
		}
	}
	return true
}
