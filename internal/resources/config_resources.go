package resources

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"outlook-calendar-mcp/internal/graph"
	"outlook-calendar-mcp/internal/logging"
	"outlook-calendar-mcp/internal/server"
)

// ConfigResourceURI identifies the effective-configuration resource.
const ConfigResourceURI = "calendar://config"

// RegisterConfigResources registers the effective-configuration resource.
// It lets clients discover the defaults the server applies without guessing
// from tool behavior; the default user is anonymized so the resource never
// leaks a mailbox identifier over the transport.
func RegisterConfigResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	configResource := mcp.NewResource(
		ConfigResourceURI,
		"Calendar Server Configuration",
		mcp.WithResourceDescription("Effective defaults: user alias resolution, timezone and upstream endpoint"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(configResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleConfigResource(ctx, request, sc)
	})

	return nil
}

func handleConfigResource(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	defaultUser := "not configured"
	if userID := sc.DefaultUserID(); userID != "" {
		defaultUser = logging.AnonymizeUser(userID)
	}

	configData := map[string]interface{}{
		"defaultUser":     defaultUser,
		"userAlias":       server.UserAlias,
		"defaultTimezone": sc.DefaultTimeZone(),
		"upstreamBaseURL": graph.DefaultBaseURL,
	}

	jsonData, err := json.MarshalIndent(configData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize configuration: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
