// Package render materializes vdom trees into a host tree and keeps them in
// sync.
//
// Mount builds host nodes for a fresh tree. Patch compares the previously
// rendered node list with the next one and applies the smallest set of host
// mutations it can find by position:
//
//   - same tag at the same position: update in place (text payload, or
//     attribute diff plus a recursive child patch)
//   - different tag, or a position only the next list has: mount fresh at
//     that position and discard the old host node
//   - a position only the previous list has: remove the host node
//
// Children are matched by index, not by key. Reordering a list therefore
// costs more mutations than a keyed algorithm would, but never corrupts the
// host tree.
//
// The Renderer remembers which host node each mounted vdom node produced. That
// pairing is its only state between render cycles, and it assumes it is the
// only writer of the host subtrees it manages.
package render
