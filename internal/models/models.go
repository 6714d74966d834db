package models

import (
	"math/big"
)

// Kind identifies which variant of the JSON value sum type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON value. The set of implementations is closed: Null, Bool,
// Number, String, Array and *Object. Values are treated as immutable once
// built; transforms return new trees.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept as its literal text so that precision is never
// lost to float conversion.
type Number string

// String is a JSON string.
type String string

// Array is a JSON array.
type Array []Value

// Member is one key/value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object. Members keep the order in which keys appeared in
// the source document; keys are unique.
type Object struct {
	Members []Member
}

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Number) isValue()  {}
func (String) isValue()  {}
func (Array) isValue()   {}
func (*Object) isValue() {}

// NewObject builds an object from members. A later duplicate key replaces the
// earlier value in place, mirroring how JSON parsers resolve duplicates.
func NewObject(members ...Member) *Object {
	obj := &Object{Members: make([]Member, 0, len(members))}
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			obj.Members[i].Value = m.Value
			continue
		}
		index[m.Key] = len(obj.Members)
		obj.Members = append(obj.Members, m)
	}
	return obj
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Members)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the member keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for _, m := range o.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Equal reports whether two values are structurally equal. Object key order is
// ignored and numbers compare by numeric value, so 1, 1.0 and 1e0 are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return NumbersEqual(av, b.(Number))
	case String:
		return av == b.(String)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		for _, m := range av.Members {
			other, ok := bv.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// NumbersEqual compares two JSON number literals by value.
func NumbersEqual(a, b Number) bool {
	if a == b {
		return true
	}
	ra, okA := new(big.Rat).SetString(string(a))
	rb, okB := new(big.Rat).SetString(string(b))
	if !okA || !okB {
		return false
	}
	return ra.Cmp(rb) == 0
}

// IsContainer reports whether v is an array or an object.
func IsContainer(v Value) bool {
	if v == nil {
		return false
	}
	k := v.Kind()
	return k == KindArray || k == KindObject
}
