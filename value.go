// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon

import (
	"iter"
	"slices"

	"github.com/creachadair/mds/omap"
)

// A Type identifies the variant of a Value.
type Type byte

// Constants defining the valid Type values. Quoted and unquoted strings
// are distinct observable types carried by the one String node.
const (
	TNull     Type = iota // the null constant
	TBool                 // a Boolean constant
	TInt                  // an integer
	TFloat                // a floating-point number
	TString               // a quoted string
	TUqString             // an unquoted (bare-word) string
	TList                 // an ordered sequence of values
	TDict                 // a key-ordered collection of string-keyed values
)

var typeStr = [...]string{
	TNull:     "null",
	TBool:     "bool",
	TInt:      "int",
	TFloat:    "float",
	TString:   "string",
	TUqString: "unquoted string",
	TList:     "list",
	TDict:     "dict",
}

func (t Type) String() string {
	v := int(t)
	if v >= len(typeStr) {
		return "invalid type"
	}
	return typeStr[v]
}

// A Value is a single node of a parsed SimpleON tree.
type Value interface{ Type() Type }

// Null represents the null constant.
type Null struct{}

// Type satisfies the Value interface.
func (Null) Type() Type { return TNull }

// A Bool is a Boolean constant, true or false.
type Bool bool

// Type satisfies the Value interface.
func (Bool) Type() Type { return TBool }

// An Int is an integer value.
type Int int64

// Type satisfies the Value interface.
func (Int) Type() Type { return TInt }

// A Float is a floating-point value.
type Float float64

// Type satisfies the Value interface.
func (Float) Type() Type { return TFloat }

// A String is a string value. Quoted records whether the string came
// from a quoted literal or from a bare word.
type String struct {
	Text   string
	Quoted bool
}

// Type satisfies the Value interface.
func (s String) Type() Type {
	if s.Quoted {
		return TString
	}
	return TUqString
}

// A List is an ordered sequence of values.
type List struct {
	Values []Value
}

// Type satisfies the Value interface.
func (*List) Type() Type { return TList }

// Len reports the number of elements of l. It is safe to call on a nil List.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Values)
}

// A Dict is a collection of string-keyed values, maintained in ascending
// order of key.
type Dict struct {
	m omap.Map[string, Value]
}

// NewDict constructs a new empty Dict.
func NewDict() *Dict { return &Dict{m: omap.New[string, Value]()} }

// Type satisfies the Value interface.
func (*Dict) Type() Type { return TDict }

// Len reports the number of members of d. It is safe to call on a nil Dict.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return d.m.Len()
}

// Set maps key to value in d, replacing any existing mapping for key.
func (d *Dict) Set(key string, value Value) { d.m.Set(key, value) }

// Get reports whether key is present in d, and if so returns its value.
// It is safe to call on a nil Dict.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	return d.m.Get(key)
}

// Find returns the value mapped by key in d, or nil.
func (d *Dict) Find(key string) Value {
	v, _ := d.Get(key)
	return v
}

// All ranges over the members of d in ascending order of key. It is safe
// to call on a nil Dict.
func (d *Dict) All() iter.Seq2[string, Value] {
	if d == nil {
		return func(func(string, Value) bool) {}
	}
	return d.m.All()
}

// Keys returns the keys of d in ascending order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Collect(d.m.Keys())
}

// AsBool returns the truth value of v if it is a Bool, or false.
func AsBool(v Value) bool {
	b, ok := v.(Bool)
	return ok && bool(b)
}

// AsInt returns the value of v if it is an Int, or 0.
func AsInt(v Value) int64 {
	if z, ok := v.(Int); ok {
		return int64(z)
	}
	return 0
}

// AsFloat returns the value of v if it is a Float, or 0.
func AsFloat(v Value) float64 {
	if f, ok := v.(Float); ok {
		return float64(f)
	}
	return 0
}

// AsString returns the text of v if it is a quoted or unquoted string,
// or "".
func AsString(v Value) string {
	if s, ok := v.(String); ok {
		return s.Text
	}
	return ""
}

// AsList returns the elements of v if it is a List, or nil.
func AsList(v Value) []Value {
	if l, ok := v.(*List); ok && l != nil {
		return l.Values
	}
	return nil
}

// AsDict returns v as a *Dict if it is a Dict, or nil. The methods of
// Dict treat a nil receiver as empty.
func AsDict(v Value) *Dict {
	if d, ok := v.(*Dict); ok {
		return d
	}
	return nil
}
