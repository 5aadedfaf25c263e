// Package host serves mounted elements over HTTP and pushes re-renders
// to connected clients over WebSocket.
//
// The host plays the part of the hosting document: it owns an element
// registry, renders element pages on first load, and keeps each live
// connection paired with one mounted instance. Property mutations on
// the server coalesce through the instance's scheduler and reach the
// client as JSON patch frames; inbound attribute writes from the client
// flow through a middleware chain before they touch the instance.
package host
