// Package app ties a Store, a Renderer and a render function into the
// subscribe, render, patch loop.
//
// Start subscribes to the store and renders once; every notification after
// that renders again and patches the container against the previous tree.
// Destroy removes the subscription, after which the container is never
// touched again.
//
//	a := app.Start(st, renderer, view, container)
//	defer a.Destroy()
//
// Create is the one-call form that also initializes a Router.
package app
