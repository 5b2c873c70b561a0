// Package server provides the MCP server context plus the health and metrics
// HTTP endpoints of the calendar server.
//
// # Key Components
//
// ServerContext holds the authenticated Graph calendar client, the configured
// defaults (user, timezone), and optional instrumentation. Tokens are acquired
// via the Azure client-credential flow and cached by the underlying oauth2
// transport, so no interactive login ever happens.
//
// HealthChecker exposes Kubernetes-style probes (/healthz, /readyz,
// /healthz/detailed) that reflect the readiness and shutdown state of the
// server context.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from MCP client traffic.
package server
