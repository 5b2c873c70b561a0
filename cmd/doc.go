// Package cmd implements the command-line interface for outlook-calendar-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Outlook calendar tools for AI assistants
//   - events: List upcoming calendar events from the command line
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
