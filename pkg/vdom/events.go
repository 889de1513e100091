package vdom

// Event is delivered to handlers when the host reports user input.
type Event struct {
	Type    string // "click", "keydown", ...
	Key     string // Key name for keyboard events ("Enter", "Escape")
	Value   string // Current value of the target for input events
	Checked bool   // Checked state of the target for checkbox events
	Target  any    // Host node the event was dispatched to

	defaultPrevented bool
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// on creates a handler attribute for the given event name.
func on(name string, handler Handler) Attr {
	return Attr{Key: "on" + name, Value: HandlerValue(handler)}
}

// OnClick handles click events.
func OnClick(handler Handler) Attr { return on("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler Handler) Attr { return on("dblclick", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler Handler) Attr { return on("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler Handler) Attr { return on("keyup", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler Handler) Attr { return on("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler Handler) Attr { return on("change", handler) }

// OnBlur handles blur events.
func OnBlur(handler Handler) Attr { return on("blur", handler) }

// OnFocus handles focus events.
func OnFocus(handler Handler) Attr { return on("focus", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler Handler) Attr { return on("submit", handler) }

// On binds a handler to an arbitrary event name.
func On(name string, handler Handler) Attr { return on(name, handler) }
