package server

import (
	"context"
	"strings"
	"testing"

	"outlook-calendar-mcp/internal/azure"
)

func testCredentials() azure.Config {
	return azure.Config{
		TenantID:     "test-tenant",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	}
}

func TestNewServerContext(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testCredentials(), "alice@example.com", "Asia/Manila")
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	defer sc.Shutdown()

	if sc.CalendarClient() == nil {
		t.Error("CalendarClient() returned nil")
	}
	if got := sc.DefaultTimeZone(); got != "Asia/Manila" {
		t.Errorf("DefaultTimeZone() = %q, want %q", got, "Asia/Manila")
	}
	if sc.IsShutdown() {
		t.Error("IsShutdown() = true for a fresh context")
	}
}

func TestNewServerContext_IncompleteCredentials(t *testing.T) {
	creds := testCredentials()
	creds.ClientSecret = ""

	_, err := NewServerContext(context.Background(), creds, "", "UTC")
	if err == nil {
		t.Fatal("NewServerContext() expected error for incomplete credentials")
	}
	if !strings.Contains(err.Error(), "incomplete Azure credentials") {
		t.Errorf("NewServerContext() error = %v, want credentials error", err)
	}
}

func TestResolveUserID(t *testing.T) {
	tests := []struct {
		name        string
		defaultUser string
		requested   string
		want        string
		expectError bool
	}{
		{
			name:        "explicit user passes through",
			defaultUser: "alice@example.com",
			requested:   "bob@example.com",
			want:        "bob@example.com",
		},
		{
			name:        "me alias resolves to default",
			defaultUser: "alice@example.com",
			requested:   "me",
			want:        "alice@example.com",
		},
		{
			name:        "empty resolves to default",
			defaultUser: "alice@example.com",
			requested:   "",
			want:        "alice@example.com",
		},
		{
			name:        "me alias without default fails",
			defaultUser: "",
			requested:   "me",
			expectError: true,
		},
		{
			name:        "explicit user works without default",
			defaultUser: "",
			requested:   "carol@example.com",
			want:        "carol@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := NewServerContext(context.Background(), testCredentials(), tt.defaultUser, "UTC")
			if err != nil {
				t.Fatalf("NewServerContext() error = %v", err)
			}
			defer sc.Shutdown()

			got, err := sc.ResolveUserID(tt.requested)
			if tt.expectError {
				if err == nil {
					t.Fatal("ResolveUserID() expected error, got nil")
				}
				if !strings.Contains(err.Error(), "USER_ID") {
					t.Errorf("ResolveUserID() error = %v, want mention of USER_ID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveUserID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveUserID(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testCredentials(), "", "UTC")
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("Context() not cancelled after Shutdown()")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() second call error = %v", err)
	}
}
