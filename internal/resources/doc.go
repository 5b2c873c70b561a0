// Package resources provides MCP resources for exposing server data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the effective server configuration and other contextual information.
package resources
