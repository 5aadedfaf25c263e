// Package element defines the custom-element model: a compile-time
// property schema, a registry of tag names, and the mounted Instance
// that re-renders an element when its observed properties change.
//
// An element declares its properties in a fixed Schema. Each property
// carries two flags: whether mutating it triggers a re-render, and
// whether it is reflected to a boundary attribute. Properties that
// trigger re-renders are backed by reactive signals inside the element;
// mounting an instance wires signal notifications to the scheduler so
// that any number of synchronous mutations coalesce into one render.
package element
