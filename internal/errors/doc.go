// Package errors provides structured, actionable error values for Glint.
//
// Each error has a unique code (e.g. "E001") that maps to a short
// message, a category, and a documentation URL. Call sites add detail
// and suggestions:
//
//	err := errors.New("E003").
//	    WithDetail("tag \"title-bar\" has not been defined").
//	    WithSuggestion("call registry.Define before instantiating")
//
// Errors wrap an underlying cause where one exists and play well with
// the standard errors package (Unwrap, Is, As).
package errors
