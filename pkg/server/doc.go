// Package server serves an app over HTTP and WebSocket.
//
// GET requests render a fresh app instance at the request path and return
// the HTML. A WebSocket connection on /ws gets its own instance: the server
// sends the body HTML with node IDs, then answers every client message
// (event, navigate, back, forward) with the host mutations it caused.
package server
