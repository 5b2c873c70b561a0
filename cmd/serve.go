package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"outlook-calendar-mcp/internal/azure"
	"outlook-calendar-mcp/internal/instrumentation"
	"outlook-calendar-mcp/internal/logging"
	"outlook-calendar-mcp/internal/resources"
	"outlook-calendar-mcp/internal/server"
	"outlook-calendar-mcp/internal/tools/calendar_tools"
)

// Environment variables read by the serve command, in addition to the Azure
// credentials consumed by the azure package.
const (
	envPort   = "PORT"
	envUserID = "USER_ID"
)

// defaultTimeZone applies when tool callers omit a timezone.
const defaultTimeZone = "Asia/Manila"

// Supported transport values for the --transport flag.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		transport string
		httpAddr  string
		timezone  string
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Outlook calendar
tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: HTTP with Server-Sent Events
  - streamable-http: Streamable HTTP transport

Configuration (environment, optionally via a .env file):
  AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_SECRET
      Azure AD application registration for the client-credential flow.
  USER_ID
      Mailbox the "me" alias resolves to in tool calls.
  PORT
      HTTP transport bind port (default 3000). Ignored for stdio.
  MCP_AUTH_TOKEN
      Shared bearer token required on the HTTP transports. When unset,
      the HTTP transports accept unauthenticated requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if httpAddr == "" {
				httpAddr = defaultHTTPAddr()
			}
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(transport, httpAddr, timezone, metricsConfig)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP server address (for sse and streamable-http transports). Defaults to :$PORT or :3000.")
	cmd.Flags().StringVar(&timezone, "timezone", defaultTimeZone, "Default IANA timezone for tool calls that omit one")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// defaultHTTPAddr derives the HTTP bind address from the PORT environment
// variable, falling back to port 3000.
func defaultHTTPAddr() string {
	if port := os.Getenv(envPort); port != "" {
		return ":" + port
	}
	return ":3000"
}

func runServe(transport, httpAddr, timezone string, metricsConfig MetricsConfig) error {
	// A .env file is optional; process environment wins when present.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled && os.Getenv("METRICS_ENABLED") == "true" {
		metricsConfig.Enabled = true
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != transportStdio {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != transportStdio && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
			Logger:                  logging.DefaultLogger(),
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server stopped with error: %v", err)
			}
		}()
		log.Printf("Metrics server listening on %s", metricsServer.Addr())
	}

	// Azure credentials are required; fail fast with the missing keys named.
	creds, err := azure.ConfigFromEnv()
	if err != nil {
		return err
	}

	// Create server context
	serverContext, err := server.NewServerContext(shutdownCtx, creds, os.Getenv(envUserID), timezone)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetInstrumentation(
			provider.Metrics(),
			instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging),
		)
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != transportStdio {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("outlook-calendar-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	// Register all tools and resources
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch transport {
	case transportStdio:
		return runStdioServer(mcpSrv)
	case transportSSE, transportStreamableHTTP:
		fmt.Printf("Starting outlook-calendar-mcp server with %s transport on %s...\n", transport, httpAddr)
		return runHTTPServer(shutdownCtx, mcpSrv, serverContext, transport, httpAddr)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s, %s)",
			transport, transportStdio, transportSSE, transportStreamableHTTP)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// runHTTPServer serves the MCP server over HTTP. The MCP endpoint sits
// behind the shared-bearer middleware; health endpoints stay open so probes
// work without credentials.
func runHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, transport, addr string) error {
	var mcpHandler http.Handler
	switch transport {
	case transportSSE:
		mcpHandler = mcpserver.NewSSEServer(mcpSrv)
	case transportStreamableHTTP:
		mcpHandler = mcpserver.NewStreamableHTTPServer(mcpSrv)
	}

	authToken := os.Getenv(server.EnvAuthToken)
	if authToken == "" {
		log.Printf("Warning: %s is not set; the HTTP transport accepts unauthenticated requests", server.EnvAuthToken)
	}

	healthChecker := server.NewHealthChecker(serverContext)

	mux := http.NewServeMux()
	mux.Handle("/", server.BearerAuthMiddleware(authToken, mcpHandler))
	healthChecker.RegisterHealthEndpoints(mux)

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(mcpSrv, ctx)
			},
		},
		{
			name: "Config Resources",
			register: func() error {
				return resources.RegisterConfigResources(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
