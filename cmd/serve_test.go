package cmd

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"outlook-calendar-mcp/internal/azure"
	"outlook-calendar-mcp/internal/server"
)

func TestDefaultHTTPAddr(t *testing.T) {
	tests := []struct {
		name     string
		port     string
		expected string
	}{
		{
			name:     "no PORT set",
			port:     "",
			expected: ":3000",
		},
		{
			name:     "PORT set",
			port:     "8080",
			expected: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envPort, tt.port)
			if got := defaultHTTPAddr(); got != tt.expected {
				t.Errorf("defaultHTTPAddr() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRegisterAllTools(t *testing.T) {
	creds := azure.Config{
		TenantID:     "test-tenant",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	}
	sc, err := server.NewServerContext(context.Background(), creds, "alice@example.com", defaultTimeZone)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer func() {
		_ = sc.Shutdown()
	}()

	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	if err := registerAllTools(mcpSrv, sc); err != nil {
		t.Fatalf("registerAllTools() error = %v", err)
	}
}

func TestNewServeCmdDefaults(t *testing.T) {
	cmd := newServeCmd()

	if got, _ := cmd.Flags().GetString("transport"); got != transportStdio {
		t.Errorf("transport default = %q, want %q", got, transportStdio)
	}
	if got, _ := cmd.Flags().GetString("timezone"); got != defaultTimeZone {
		t.Errorf("timezone default = %q, want %q", got, defaultTimeZone)
	}
	if got, _ := cmd.Flags().GetString("metrics-addr"); got != server.DefaultMetricsAddr {
		t.Errorf("metrics-addr default = %q, want %q", got, server.DefaultMetricsAddr)
	}
}
