// Package vdom defines the render description produced by elements: a
// tree of VNodes, builder functions for constructing trees, and a diff
// that turns two descriptions into a minimal patch list.
//
// A render description is declarative and inert. Producing one has no
// side effects; the host (pkg/host) or the HTML renderer (pkg/render)
// decides what to do with it.
package vdom
