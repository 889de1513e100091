package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: ValueOf(value)}
}

// Prop creates an attribute from any supported Go value.
func Prop(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassName sets the className slot, rendered as the host class attribute.
func ClassName(name string) Attr { return attr("className", name) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// ValueAttr sets the value attribute.
func ValueAttr(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Checked sets or clears the checked presence attribute.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Disabled sets or clears the disabled presence attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Hidden sets or clears the hidden presence attribute.
func Hidden(hidden bool) Attr { return attr("hidden", hidden) }

// Autofocus sets the autofocus attribute.
func Autofocus() Attr { return attr("autofocus", true) }

// Ref registers a callback receiving the mounted host node.
// It runs once when the element is mounted and never on updates.
func Ref(fn RefFunc) Attr { return Attr{Key: "ref", Value: RefValue(fn)} }

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{} // Empty attr, will be ignored
}

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges multiple class values.
// Accepts string, []string, and map[string]bool. Map entries are emitted in
// sorted order so equal inputs always produce equal attributes. No classes
// yields an empty Attr, which H ignores.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			for _, class := range sortedKeys(v) {
				if v[class] && class != "" {
					result = append(result, class)
				}
			}
		}
	}
	if len(result) == 0 {
		return Attr{}
	}
	return attr("class", strings.Join(result, " "))
}
