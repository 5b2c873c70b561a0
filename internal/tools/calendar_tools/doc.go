// Package calendar_tools provides MCP (Model Context Protocol) tools for
// Outlook calendar operations backed by Microsoft Graph.
//
// This package exposes calendar functionality through a standardized MCP
// interface, allowing AI assistants to read a user's schedule and create
// events, including recurring series and online meetings, on their behalf.
package calendar_tools
