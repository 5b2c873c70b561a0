package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlook-calendar-mcp/internal/graph"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(graph.NewClientWithBaseURL(srv.Client(), srv.URL))
}

func TestListEventsQueryShape(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	start := time.Date(2025, 7, 7, 0, 0, 0, 0, loc)
	end := time.Date(2025, 7, 8, 0, 0, 0, 0, loc)

	var gotPath string
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[]}`))
	})

	_, err = client.ListEvents(context.Background(), "user@example.com", start, end, "Asia/Manila")
	require.NoError(t, err)

	assert.Equal(t, "/users/user@example.com/calendar/calendarView", gotPath)
	assert.Equal(t, "2025-07-07T00:00:00+08:00", gotQuery["startDateTime"])
	assert.Equal(t, "2025-07-08T00:00:00+08:00", gotQuery["endDateTime"])
	assert.Equal(t, eventSelectFields, gotQuery["$select"])
	assert.Equal(t, "start/dateTime", gotQuery["$orderby"])
	assert.Equal(t, "100", gotQuery["$top"])
}

func TestListEventsProjection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[
			{"id":"AAMkAD1",
			 "subject":"Standup",
			 "start":{"dateTime":"2025-07-07T10:00:00.0000000","timeZone":"Asia/Manila"},
			 "end":{"dateTime":"2025-07-07T10:30:00.0000000","timeZone":"Asia/Manila"},
			 "organizer":{"emailAddress":{"name":"Ana Cruz","address":"ana@example.com"}},
			 "attendees":[{"emailAddress":{"name":"Ben","address":"ben@example.com"},"type":"optional","status":{"response":"accepted","time":"2025-07-01T09:00:00Z"}}],
			 "bodyPreview":"Daily sync",
			 "webLink":"https://outlook.example.com/event/1"},
			{"subject":"","bodyPreview":""}
		]}`))
	})

	events, err := client.ListEvents(context.Background(), "me", time.Now(), time.Now().Add(24*time.Hour), "Asia/Manila")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "AAMkAD1", events[0].ID)
	assert.Equal(t, "Standup", events[0].Subject)
	assert.Equal(t, "Ana Cruz", events[0].Organizer.Name)
	assert.Equal(t, "ana@example.com", events[0].Organizer.Email)
	require.Len(t, events[0].Attendees, 1)
	assert.Equal(t, "ben@example.com", events[0].Attendees[0].Email)
	assert.Equal(t, "optional", events[0].Attendees[0].Type)
	assert.Equal(t, "accepted", events[0].Attendees[0].Response)
	assert.Equal(t, "https://outlook.example.com/event/1", events[0].WebLink)

	assert.Equal(t, "No subject", events[1].Subject)
	assert.Equal(t, "Unknown", events[1].Organizer.Name)
	assert.Empty(t, events[1].Organizer.Email)
}

func TestListEventsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"ErrorAccessDenied","message":"Access is denied."}}`))
	})

	_, err := client.ListEvents(context.Background(), "me", time.Now(), time.Now().Add(time.Hour), "UTC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ErrorAccessDenied")
}

func TestCreateEvent(t *testing.T) {
	var gotPath string
	var gotPayload graph.Event
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"AAMkAD","subject":"Team Sync Meeting","webLink":"https://outlook.example.com/event/2"}`))
	})

	created, err := client.CreateEvent(context.Background(), "user@example.com", EventInput{
		Subject:       "Team Sync Meeting",
		StartDateTime: "2025-07-07T10:00:00",
		EndDateTime:   "2025-07-07T11:00:00",
		TimeZone:      "Asia/Manila",
		Attendees:     []string{"ana@example.com", "not-an-email"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/users/user@example.com/events", gotPath)
	assert.Equal(t, "Team Sync Meeting", gotPayload.Subject)
	require.Len(t, gotPayload.Attendees, 1)
	assert.Equal(t, "ana@example.com", gotPayload.Attendees[0].EmailAddress.Address)

	assert.Equal(t, "AAMkAD", created.ID)
	assert.Equal(t, "https://outlook.example.com/event/2", created.WebLink)
}

func TestCreateEventInvalidInputDoesNotCallUpstream(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.CreateEvent(context.Background(), "me", EventInput{
		StartDateTime: "2025-07-07T10:00:00",
		EndDateTime:   "2025-07-07T11:00:00",
		TimeZone:      "UTC",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject is required")
	assert.False(t, called, "invalid input must be rejected before any upstream call")
}
