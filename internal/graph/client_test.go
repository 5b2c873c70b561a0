package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_PreferHeader(t *testing.T) {
	var gotPrefer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		fmt.Fprint(w, `{"value":[]}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(nil, srv.URL)

	var page eventPage
	err := client.GetJSON(context.Background(), "/users/u1/calendar/calendarView", nil, "Asia/Manila", &page)
	require.NoError(t, err)
	assert.Equal(t, `outlook.timezone="Asia/Manila"`, gotPrefer)
}

func TestListEvents_DrainsPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/u1/calendar/calendarView":
			fmt.Fprintf(w, `{"value":[{"id":"e1"},{"id":"e2"}],"@odata.nextLink":"%s/page2"}`, srv.URL)
		case "/page2":
			fmt.Fprint(w, `{"value":[{"id":"e3"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(nil, srv.URL)

	events, err := client.ListEvents(context.Background(), "users/u1/calendar/calendarView", url.Values{"$top": {"100"}}, "")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "e2", events[1].ID)
	assert.Equal(t, "e3", events[2].ID)
}

func TestGetJSON_GraphErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":"ErrorAccessDenied","message":"Access is denied."}}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(nil, srv.URL)

	var out map[string]any
	err := client.GetJSON(context.Background(), "/users/u1/events", nil, "", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "ErrorAccessDenied")
	assert.Contains(t, err.Error(), "Access is denied.")
}

func TestPostJSON_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream unavailable")
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(nil, srv.URL)

	err := client.PostJSON(context.Background(), "/users/u1/events", map[string]string{"subject": "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestPostJSON_DecodesCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"new-event","subject":"Sync"}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(nil, srv.URL)

	var created Event
	err := client.PostJSON(context.Background(), "users/u1/events", Event{Subject: "Sync"}, &created)
	require.NoError(t, err)
	assert.Equal(t, "new-event", created.ID)
	assert.Equal(t, "Sync", created.Subject)
}
