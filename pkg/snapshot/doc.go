// Package snapshot publishes rendered element HTML to durable storage.
//
// A snapshot is the server-rendered description of one element at one
// point in time. The CLI's render command and applications that want
// static copies of live elements save snapshots through a Store: local
// disk for development, S3 for publishing.
package snapshot
