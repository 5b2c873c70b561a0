package calendar_tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"

	"outlook-calendar-mcp/internal/azure"
	"outlook-calendar-mcp/internal/calendar"
	"outlook-calendar-mcp/internal/graph"
	"outlook-calendar-mcp/internal/server"
)

// newStubbedContext builds a server context whose calendar client talks to
// the given handler instead of the real Graph endpoint.
func newStubbedContext(t *testing.T, defaultUser string, handler http.HandlerFunc) *server.ServerContext {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds := azure.Config{
		TenantID:     "test-tenant",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	}
	sc, err := server.NewServerContext(context.Background(), creds, defaultUser, "Asia/Manila")
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() {
		_ = sc.Shutdown()
	})

	sc.SetCalendarClient(calendar.NewClient(graph.NewClientWithBaseURL(srv.Client(), srv.URL)))
	return sc
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Content[0] is %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandleGetCalendarEvents(t *testing.T) {
	var gotPath string
	sc := newStubbedContext(t, "alice@example.com", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []graph.Event{
				{
					Subject: "Team Sync Meeting",
					Start:   &graph.DateTimeTimeZone{DateTime: "2025-07-07T10:00:00", TimeZone: "Asia/Manila"},
					End:     &graph.DateTimeTimeZone{DateTime: "2025-07-07T10:30:00", TimeZone: "Asia/Manila"},
					Organizer: &graph.Recipient{
						EmailAddress: graph.EmailAddress{Name: "Alice", Address: "alice@example.com"},
					},
				},
			},
		})
	})

	result, err := handleGetCalendarEvents(context.Background(), callRequest(map[string]any{
		"user_id":    "me",
		"start_date": "2025-07-07",
		"end_date":   "2025-07-08",
		"timezone":   "Asia/Manila",
	}), sc)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handler returned error result: %s", textOf(t, result))
	}

	if gotPath != "/users/alice@example.com/calendar/calendarView" {
		t.Errorf("upstream path = %q, want the resolved default user", gotPath)
	}

	text := textOf(t, result)
	if !contains(text, "Found 1 events between 2025-07-07 and 2025-07-08") {
		t.Errorf("text summary = %q", text)
	}
	if len(result.Content) != 2 {
		t.Errorf("len(Content) = %d, want text plus resource", len(result.Content))
	}
}

func TestHandleGetCalendarEvents_MeWithoutDefaultUser(t *testing.T) {
	called := false
	sc := newStubbedContext(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	result, err := handleGetCalendarEvents(context.Background(), callRequest(map[string]any{}), sc)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !contains(textOf(t, result), "USER_ID") {
		t.Errorf("error text = %q, want mention of USER_ID", textOf(t, result))
	}
	if called {
		t.Error("upstream was called despite unresolved user")
	}
}

func TestHandleGetCalendarEvents_UpstreamFailure(t *testing.T) {
	sc := newStubbedContext(t, "alice@example.com", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"ErrorAccessDenied","message":"Access is denied."}}`))
	})

	result, err := handleGetCalendarEvents(context.Background(), callRequest(map[string]any{
		"start_date": "2025-07-07",
		"end_date":   "2025-07-07",
	}), sc)
	if err != nil {
		t.Fatalf("handler must not return a Go error for upstream failures, got %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !contains(textOf(t, result), "ErrorAccessDenied") {
		t.Errorf("error text = %q, want upstream error code", textOf(t, result))
	}
}

func TestHandleGetCalendarEvents_InvalidTimezone(t *testing.T) {
	sc := newStubbedContext(t, "alice@example.com", func(w http.ResponseWriter, r *http.Request) {})

	result, err := handleGetCalendarEvents(context.Background(), callRequest(map[string]any{
		"timezone": "Not/AZone",
	}), sc)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for invalid timezone")
	}
}

func TestHandleCreateCalendarEvent(t *testing.T) {
	var payload graph.Event
	sc := newStubbedContext(t, "alice@example.com", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/users/alice@example.com/events" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		payload.ID = "AAMkAD1"
		payload.WebLink = "https://outlook.office.com/calendar/item/AAMkAD1"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(payload)
	})

	result, err := handleCreateCalendarEvent(context.Background(), callRequest(map[string]any{
		"subject":        "Sync",
		"start_datetime": "2025-07-07T10:00:00",
		"end_datetime":   "2025-07-07T10:30:00",
		"timezone":       "Asia/Manila",
		"attendees":      []any{"bob@example.com", "not-an-email"},
		"is_recurring":   true,
		"recurrence_type": "weekly",
		"days_of_week":    []any{"monday", "wednesday", "friday"},
		"recurrence_range_type": "numbered",
		"recurrence_occurrences": float64(5),
	}), sc)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handler returned error result: %s", textOf(t, result))
	}

	if payload.Recurrence == nil {
		t.Fatal("payload has no recurrence")
	}
	days := payload.Recurrence.Pattern.DaysOfWeek
	if len(days) != 3 || days[0] != "Monday" || days[1] != "Wednesday" || days[2] != "Friday" {
		t.Errorf("daysOfWeek = %v", days)
	}
	if payload.Recurrence.Range.NumberOfOccurrences != 5 {
		t.Errorf("numberOfOccurrences = %d, want 5", payload.Recurrence.Range.NumberOfOccurrences)
	}
	if len(payload.Attendees) != 1 || payload.Attendees[0].EmailAddress.Address != "bob@example.com" {
		t.Errorf("attendees = %v, want the single valid address", payload.Attendees)
	}

	text := textOf(t, result)
	if !contains(text, "Created event: Sync") {
		t.Errorf("text summary = %q", text)
	}
}

func TestHandleCreateCalendarEvent_BadRecurrence(t *testing.T) {
	called := false
	sc := newStubbedContext(t, "alice@example.com", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	result, err := handleCreateCalendarEvent(context.Background(), callRequest(map[string]any{
		"subject":        "Sync",
		"start_datetime": "2025-07-07T10:00:00",
		"end_datetime":   "2025-07-07T10:30:00",
		"is_recurring":   true,
		"recurrence_type": "weekly",
		"recurrence_range_type": "endDate",
	}), sc)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for endDate range without end date")
	}
	if !contains(textOf(t, result), "recurrence_end_date") {
		t.Errorf("error text = %q", textOf(t, result))
	}
	if called {
		t.Error("upstream was called despite invalid recurrence")
	}
}

func TestHandleCreateCalendarEvent_FractionalInterval(t *testing.T) {
	called := false
	sc := newStubbedContext(t, "alice@example.com", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	result, err := handleCreateCalendarEvent(context.Background(), callRequest(map[string]any{
		"subject":             "Sync",
		"start_datetime":      "2025-07-07T10:00:00",
		"end_datetime":        "2025-07-07T10:30:00",
		"is_recurring":        true,
		"recurrence_type":     "daily",
		"recurrence_interval": 1.5,
	}), sc)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for fractional interval")
	}
	if !contains(textOf(t, result), "recurrence_interval") {
		t.Errorf("error text = %q", textOf(t, result))
	}
	if called {
		t.Error("upstream was called despite invalid interval")
	}
}
