package tree

import (
	"strconv"
	"strings"
)

// ValueKind identifies the scalar type held by a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a typed scalar property value. Values are immutable; the zero
// value is the empty string.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// StringValue wraps s as a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntValue wraps i as an integer Value.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatValue wraps f as a float Value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// BoolValue wraps b as a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Text returns the canonical textual form of the value, which is also how
// it appears as an XML attribute in the persisted metadata block.
func (v Value) Text() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0" // keep integral floats distinguishable from ints on reparse
		}
		return s
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// ParseValue reads a value back from its canonical textual form. Bool and
// numeric forms are recognised; everything else is a string. Non-canonical
// strings (a string property holding exactly "42") will round-trip as the
// inferred type, matching how the persisted format stores untagged attributes.
func ParseValue(s string) Value {
	switch s {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}
	if strings.ContainsAny(s, ".eE") && s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return FloatValue(f)
		}
	}
	return StringValue(s)
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(o Value) bool { return v == o }
