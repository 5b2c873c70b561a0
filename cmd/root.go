package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the outlook-calendar-mcp application
var rootCmd = &cobra.Command{
	Use:   "outlook-calendar-mcp",
	Short: "MCP server for Outlook calendars via Microsoft Graph",
	Long: `outlook-calendar-mcp exposes Outlook calendar operations to AI assistants
through the Model Context Protocol (MCP), backed by the Microsoft Graph API.

It can run as:
  - An MCP server over stdio (default)
  - An MCP server over HTTP (SSE or streamable HTTP)
  - A standalone CLI for listing upcoming events`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "outlook-calendar-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
