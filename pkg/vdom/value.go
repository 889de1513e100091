package vdom

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates attribute values.
type ValueKind uint8

const (
	ValueNull    ValueKind = iota // omitted / removed
	ValueString                   // string-coerced attribute
	ValueBool                     // presence attribute
	ValueHandler                  // live event handler binding
	ValueRef                      // one-shot host node callback
)

// String returns the string representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "Null"
	case ValueString:
		return "String"
	case ValueBool:
		return "Bool"
	case ValueHandler:
		return "Handler"
	case ValueRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// Handler is an event handler bound to an element.
type Handler func(e *Event)

// RefFunc receives the host node an element was mounted as.
type RefFunc func(node any)

// Value is an attribute value. Only the field matching Kind is meaningful.
type Value struct {
	Kind    ValueKind
	Str     string
	Bool    bool
	Handler Handler
	Ref     RefFunc
}

// Null returns the null value.
func Null() Value { return Value{} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// BoolValue returns a boolean presence value.
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// HandlerValue returns a handler value. A nil handler yields Null.
func HandlerValue(h Handler) Value {
	if h == nil {
		return Null()
	}
	return Value{Kind: ValueHandler, Handler: h}
}

// RefValue returns a ref value. A nil ref yields Null.
func RefValue(r RefFunc) Value {
	if r == nil {
		return Null()
	}
	return Value{Kind: ValueRef, Ref: r}
}

// ValueOf converts a Go value into a Value.
// Numbers and fmt.Stringers are coerced to strings; functions of the
// supported handler and ref shapes become bindings.
func ValueOf(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case string:
		return StringValue(val)
	case bool:
		return BoolValue(val)
	case int:
		return StringValue(strconv.Itoa(val))
	case int64:
		return StringValue(strconv.FormatInt(val, 10))
	case uint:
		return StringValue(strconv.FormatUint(uint64(val), 10))
	case uint64:
		return StringValue(strconv.FormatUint(val, 10))
	case float64:
		return StringValue(strconv.FormatFloat(val, 'f', -1, 64))
	case Handler:
		return HandlerValue(val)
	case func(*Event):
		return HandlerValue(val)
	case func():
		if val == nil {
			return Null()
		}
		return HandlerValue(func(*Event) { val() })
	case RefFunc:
		return RefValue(val)
	case func(any):
		return RefValue(val)
	case fmt.Stringer:
		return StringValue(val.String())
	default:
		return StringValue(fmt.Sprintf("%v", v))
	}
}

// Equal reports whether two values would produce the same host state.
// Functions cannot be compared in Go, so two handlers (or two refs) are
// equal whenever both are present; the renderer swaps the bound function
// without touching the host.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueString:
		return v.Str == o.Str
	case ValueBool:
		return v.Bool == o.Bool
	default:
		return true
	}
}

// String renders the value for debugging and string coercion.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueHandler:
		return "<handler>"
	case ValueRef:
		return "<ref>"
	default:
		return ""
	}
}
