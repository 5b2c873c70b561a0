package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with user identifiers.

// ExtractUserDomain extracts the domain part from a mailbox address.
// This reduces cardinality by using the domain instead of the full address.
// GUID-style user identifiers, which carry no "@", map to "unknown".
//
// Example:
//
//	ExtractUserDomain("jane@example.com")  // "example.com"
//	ExtractUserDomain("a-guid-user-id")    // "unknown"
//	ExtractUserDomain("")                  // "unknown"
func ExtractUserDomain(userID string) string {
	if userID == "" {
		return "unknown"
	}

	parts := strings.Split(userID, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// Common operation types for Graph API metrics.
// Status, token result, and service constants are defined in config.go.
const (
	OperationList   = "list"
	OperationCreate = "create"
)
