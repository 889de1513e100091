package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Node Errors (E100-E199)
	// ============================================

	"E100": {
		Category:   CategoryNode,
		Message:    "Node has no tag",
		Suggestion: "Build elements with vdom.H(tag, ...) or vdom.Text(...)",
	},
	"E101": {
		Category:   CategoryNode,
		Message:    "Node tag is not a valid element name",
		Suggestion: "Tags must start with a letter and contain only letters, digits and '-'",
	},
	"E102": {
		Category: CategoryNode,
		Message:  "Node kind is unknown",
	},
	"E103": {
		Category:   CategoryNode,
		Message:    "Malformed attribute entry",
		Suggestion: "Handler values belong on on* keys and on* keys only take handlers",
	},

	// ============================================
	// Router Errors (E200-E299)
	// ============================================

	"E200": {
		Category:   CategoryRouter,
		Message:    "Route handler must be callable",
		Suggestion: "Pass a non-nil func() to AddRoute",
	},
	"E201": {
		Category:   CategoryRouter,
		Message:    "Default handler must be callable",
		Suggestion: "Pass a non-nil func() to SetDefaultHandler",
	},

	// ============================================
	// Persistence Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryPersist,
		Message:  "Snapshot database could not be opened",
	},
	"E301": {
		Category: CategoryPersist,
		Message:  "Snapshot could not be encoded or decoded",
	},

	// ============================================
	// Config Errors (E400-E499)
	// ============================================

	"E400": {
		Category:   CategoryConfig,
		Message:    "Configuration file could not be read",
		Suggestion: "Check that minifw.json (or minifw.yaml) is valid",
	},
	"E401": {
		Category: CategoryConfig,
		Message:  "Configuration is invalid",
	},

	// ============================================
	// App Errors (E500-E599)
	// ============================================

	"E500": {
		Category:   CategoryApp,
		Message:    "App options are incomplete",
		Suggestion: "Create needs a render function, a container and a renderer or host tree",
	},

	// ============================================
	// Server Errors (E600-E699)
	// ============================================

	"E600": {
		Category: CategoryServer,
		Message:  "Client message is malformed",
	},
	"E601": {
		Category:   CategoryServer,
		Message:    "Unknown client message type",
		Suggestion: "Use one of: event, navigate, back, forward",
	},
	"E602": {
		Category: CategoryServer,
		Message:  "Event target has no handler",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
