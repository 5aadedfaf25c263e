// Package middleware provides observability middleware for glint event
// dispatch: Prometheus metrics and OpenTelemetry tracing.
package middleware
