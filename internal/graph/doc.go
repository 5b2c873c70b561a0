// Package graph is a thin transport wrapper around the Microsoft Graph REST
// API: authenticated GET/POST with JSON codecs, error envelope decoding, and
// @odata.nextLink pagination draining.
//
// Higher-level calendar semantics live in the calendar package; this package
// only knows wire shapes and HTTP.
package graph
