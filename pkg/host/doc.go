// Package host defines the mutable tree the renderer materializes nodes into.
//
// The renderer depends only on the Tree capability: create element and text
// nodes, append or insert children, remove them, set and remove attributes,
// set text payloads and bind live event handlers. Any tree that offers these
// operations can be driven by minifw.
//
// Document is the in-memory implementation used by tests, the CLI and the
// websocket server. It assigns every node a stable ID, records each mutation
// in a log that can be drained and shipped to a remote client, dispatches
// events by node ID and serializes itself to HTML.
package host
