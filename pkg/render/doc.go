// Package render turns render descriptions (pkg/vdom trees) into HTML.
//
// Output is deterministic: attributes are written in sorted order and
// rendering the same tree twice produces identical bytes. Rendering has
// no side effects on the tree beyond none; descriptions stay inert.
package render
