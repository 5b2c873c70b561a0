package common

import (
	"outlook-calendar-mcp/internal/server"
)

// GetUserFromArgs extracts the user identifier from request arguments.
// Defaults to the "me" alias when the argument is absent or empty; the
// server context later resolves the alias to the configured default user.
func GetUserFromArgs(args map[string]interface{}) string {
	if userVal, ok := args["user_id"].(string); ok && userVal != "" {
		return userVal
	}
	return server.UserAlias
}
