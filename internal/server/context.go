package server

import (
	"context"
	"fmt"
	"sync"

	"outlook-calendar-mcp/internal/azure"
	"outlook-calendar-mcp/internal/calendar"
	"outlook-calendar-mcp/internal/graph"
	"outlook-calendar-mcp/internal/instrumentation"
)

// UserAlias is the placeholder callers may pass instead of a concrete user
// identifier; it resolves to the configured default user.
const UserAlias = "me"

// ServerContext holds the shared state of the MCP server: the authenticated
// calendar client, the configured defaults, and optional instrumentation.
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	calendarClient  *calendar.Client
	defaultUserID   string
	defaultTimeZone string
	metrics         *instrumentation.Metrics
	auditLogger     *instrumentation.AuditLogger
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context. The Graph client is built
// from the Azure client-credential configuration; tokens are acquired and
// cached lazily by the underlying oauth2 transport on first use.
func NewServerContext(ctx context.Context, creds azure.Config, defaultUserID, defaultTimeZone string) (*ServerContext, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	graphClient := graph.NewClient(creds.HTTPClient(shutdownCtx))

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		calendarClient:  calendar.NewClient(graphClient),
		defaultUserID:   defaultUserID,
		defaultTimeZone: defaultTimeZone,
		shutdown:        false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// CalendarClient returns the calendar client.
func (sc *ServerContext) CalendarClient() *calendar.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.calendarClient
}

// SetCalendarClient replaces the calendar client. Used by tests to point the
// server at a stub backend.
func (sc *ServerContext) SetCalendarClient(client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClient = client
}

// DefaultUserID returns the user the "me" alias resolves to, or empty when
// no default user is configured.
func (sc *ServerContext) DefaultUserID() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.defaultUserID
}

// DefaultTimeZone returns the timezone used when callers omit one.
func (sc *ServerContext) DefaultTimeZone() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.defaultTimeZone
}

// ResolveUserID maps the requested user to a concrete Graph user identifier.
// An empty value or the "me" alias resolves to the configured default user;
// the alias fails when no default user is configured.
func (sc *ServerContext) ResolveUserID(requested string) (string, error) {
	if requested != "" && requested != UserAlias {
		return requested, nil
	}

	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.defaultUserID == "" {
		return "", fmt.Errorf("user_id %q requires the USER_ID environment variable to be set", UserAlias)
	}
	return sc.defaultUserID, nil
}

// SetInstrumentation configures the metrics recorder and audit logger.
func (sc *ServerContext) SetInstrumentation(metrics *instrumentation.Metrics, auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
	sc.auditLogger = auditLogger
}

// Metrics returns the metrics recorder, or nil if not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil if not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
