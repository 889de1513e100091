// Package errors provides structured, coded errors for minifw.
//
// Every error carries a short code (e.g. "E200") that maps to a registered
// message, a category and a longer explanation:
//
//	err := errors.New("E200").
//	    WithDetail(`route "/active" was registered with a nil handler`).
//	    WithSuggestion("Pass a func() to AddRoute")
//
//	fmt.Println(err.Format())
//	// ERROR E200: Route handler must be callable
//	//
//	//   route "/active" was registered with a nil handler
//	//
//	//   Hint: Pass a func() to AddRoute
//
// # Error Categories
//
//   - node: malformed virtual nodes and attribute entries (recovered by the renderer)
//   - router: invalid route registrations (returned to the caller)
//   - persist: snapshot storage failures
//   - config: configuration loading and validation
//   - app: incomplete Create options
//   - server: malformed or unroutable client messages
//
// Errors created from a code compare equal under errors.Is when their codes
// match, so callers can test for a class of failure without string matching.
package errors
