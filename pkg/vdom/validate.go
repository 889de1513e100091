package vdom

import (
	"github.com/vango-dev/minifw/internal/errors"
)

// Validate reports whether a node can be materialized. It checks only the
// node itself, not its children, so callers can recover subtree by subtree.
func Validate(v *VNode) error {
	if v == nil {
		return errors.New("E100").WithDetail("nil node")
	}
	switch v.Kind {
	case KindText:
		return nil
	case KindElement:
	default:
		return errors.New("E102").WithDetailf("kind %d", v.Kind)
	}
	if v.Tag == "" {
		return errors.New("E100")
	}
	if v.Tag == TextTag {
		return errors.New("E101").WithDetailf("%q is reserved for text nodes", v.Tag)
	}
	if !validTag(v.Tag) {
		return errors.New("E101").WithDetailf("%q", v.Tag)
	}
	return nil
}

// ValidateAttr reports whether an attribute entry is well formed.
func ValidateAttr(key string, val Value) error {
	if key == "" {
		return errors.New("E103").WithDetail("empty key")
	}
	handlerKey := IsHandlerKey(key)
	switch {
	case val.Kind == ValueHandler && !handlerKey:
		return errors.New("E103").WithDetailf("handler on non-handler key %q", key)
	case handlerKey && val.Kind != ValueHandler && val.Kind != ValueNull:
		return errors.New("E103").WithDetailf("%s value on handler key %q", val.Kind, key)
	case val.Kind == ValueRef && key != "ref":
		return errors.New("E103").WithDetailf("ref value on key %q", key)
	case key == "ref" && val.Kind != ValueRef && val.Kind != ValueNull:
		return errors.New("E103").WithDetailf("%s value on ref key", val.Kind)
	}
	return nil
}

func validTag(tag string) bool {
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-'):
		default:
			return false
		}
	}
	return true
}
