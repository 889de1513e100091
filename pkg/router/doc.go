// Package router dispatches navigation paths to handlers.
//
// A Router is a two-state machine: uninitialized until the first dispatch,
// then dispatched(path). It reads and changes the navigation position through
// a Location, which comes in two flavours over the same Browser environment:
//
//	HashLocation     the path lives in the URL fragment ("#/active")
//	HistoryLocation  the path is the URL path, changed with pushState
//
// Both adapters report external changes (back, forward, a new fragment)
// through a single listener the Router registers at construction.
//
// Routes match by exact string. A path with no route goes to the default
// handler and is not recorded as the current route.
//
//	r := router.New(router.NewHashLocation(browser))
//	r.AddRoute("/active", showActive)
//	r.SetDefaultHandler(showAll)
//	r.Init()
package router
