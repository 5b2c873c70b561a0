package common

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestNewDualResult(t *testing.T) {
	payload := map[string]interface{}{
		"subject": "Team Sync Meeting",
		"count":   1,
	}

	result, err := NewDualResult("Found 1 event", payload)
	if err != nil {
		t.Fatalf("NewDualResult() error = %v", err)
	}
	if result.IsError {
		t.Error("NewDualResult() result flagged as error")
	}
	if len(result.Content) != 2 {
		t.Fatalf("len(Content) = %d, want 2", len(result.Content))
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Content[0] is %T, want mcp.TextContent", result.Content[0])
	}
	if text.Text != "Found 1 event" {
		t.Errorf("text content = %q, want %q", text.Text, "Found 1 event")
	}

	embedded, ok := result.Content[1].(mcp.EmbeddedResource)
	if !ok {
		t.Fatalf("Content[1] is %T, want mcp.EmbeddedResource", result.Content[1])
	}
	resource, ok := embedded.Resource.(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("embedded resource is %T, want mcp.TextResourceContents", embedded.Resource)
	}
	if resource.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q, want %q", resource.MIMEType, "application/json")
	}
	if !strings.HasPrefix(resource.URI, "data:application/json,") {
		t.Errorf("URI = %q, want data:application/json URI", resource.URI)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(resource.Text), &decoded); err != nil {
		t.Fatalf("embedded JSON does not parse: %v", err)
	}
	if decoded["subject"] != "Team Sync Meeting" {
		t.Errorf("decoded subject = %v, want %q", decoded["subject"], "Team Sync Meeting")
	}
}

func TestNewDualResult_UnserializablePayload(t *testing.T) {
	_, err := NewDualResult("text", map[string]interface{}{"bad": make(chan int)})
	if err == nil {
		t.Fatal("NewDualResult() expected error for unserializable payload")
	}
}

func TestNewToolErrorResult(t *testing.T) {
	result := NewToolErrorResult("Graph API error: access denied")

	if !result.IsError {
		t.Error("IsError = false, want true")
	}
	if result.Meta == nil || result.Meta.AdditionalFields["error"] != true {
		t.Error("expected error flag in result metadata")
	}
	if len(result.Content) != 1 {
		t.Fatalf("len(Content) = %d, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Content[0] is %T, want mcp.TextContent", result.Content[0])
	}
	if text.Text != "Graph API error: access denied" {
		t.Errorf("text = %q, want error message", text.Text)
	}
}

func TestNewToolErrorResultf(t *testing.T) {
	result := NewToolErrorResultf("failed to list events for %s", "alice@example.com")

	text := result.Content[0].(mcp.TextContent)
	if text.Text != "failed to list events for alice@example.com" {
		t.Errorf("text = %q", text.Text)
	}
}
