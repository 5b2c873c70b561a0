package common

import (
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
)

// NewDualResult builds a tool result carrying the same payload twice: a
// human-readable text rendering and an embedded JSON resource for clients
// that prefer structured data.
func NewDualResult(text string, payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize result payload: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
			mcp.EmbeddedResource{
				Type: "resource",
				Resource: mcp.TextResourceContents{
					URI:      "data:application/json," + url.PathEscape(string(data)),
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		},
	}, nil
}

// NewToolErrorResult builds an error result for operational failures. The
// result is flagged as an error both through IsError and through response
// metadata, so every client sees the failure regardless of which field it
// inspects. Handlers return these instead of Go errors to keep failures
// inside the tool protocol.
func NewToolErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Result: mcp.Result{
			Meta: &mcp.Meta{
				AdditionalFields: map[string]any{"error": true},
			},
		},
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: message,
			},
		},
		IsError: true,
	}
}

// NewToolErrorResultf is NewToolErrorResult with formatting.
func NewToolErrorResultf(format string, args ...any) *mcp.CallToolResult {
	return NewToolErrorResult(fmt.Sprintf(format, args...))
}
