// Package common provides shared utilities for MCP tool implementations.
// It contains the user-argument extraction, instrumentation wrappers and
// result constructors used across all tool packages to avoid code
// duplication and ensure consistent behavior.
package common
