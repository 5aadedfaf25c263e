// Package gtest provides testing helpers for glint elements.
//
// The gtest package reduces boilerplate when testing elements by
// providing a mount harness and render assertions.
//
// # Quick Start
//
//	func TestTitleBar(t *testing.T) {
//	    h := gtest.Mount(t, titlebar.New())
//	    gtest.ExpectContains(t, h.Tree(), "You are awesome")
//	}
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	gtest.ExpectContains(t, tree, "Welcome")
//	gtest.ExpectNotContains(t, tree, "Error")
//	gtest.ExpectAttribute(t, tree, "class", "titlebar")
//
// # Mount Harness
//
// Mount wires an element to a private scheduler so tests can mutate
// properties and observe coalesced re-renders:
//
//	h := gtest.Mount(t, el)
//	el.SetTitle("hi")
//	updates := h.Flush()
package gtest
