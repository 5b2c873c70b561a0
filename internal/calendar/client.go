package calendar

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"outlook-calendar-mcp/internal/graph"
)

// eventSelectFields restricts calendarView responses to the fields the
// projection needs.
const eventSelectFields = "id,subject,start,end,organizer,attendees,bodyPreview,webLink"

// eventPageSize is the $top value for calendarView queries.
const eventPageSize = "100"

// Client provides calendar operations on top of the Graph HTTP client.
type Client struct {
	graph *graph.Client
}

// NewClient creates a calendar client backed by the given Graph client.
func NewClient(g *graph.Client) *Client {
	return &Client{graph: g}
}

// ListEvents fetches all events for the user in the half-open window
// [start, end), draining every continuation page. Event times in the
// response are localized to timeZone via the Prefer header.
func (c *Client) ListEvents(ctx context.Context, userID string, start, end time.Time, timeZone string) ([]EventSummary, error) {
	query := url.Values{}
	query.Set("startDateTime", start.Format(time.RFC3339))
	query.Set("endDateTime", end.Format(time.RFC3339))
	query.Set("$select", eventSelectFields)
	query.Set("$orderby", "start/dateTime")
	query.Set("$top", eventPageSize)

	path := fmt.Sprintf("/users/%s/calendar/calendarView", url.PathEscape(userID))
	events, err := c.graph.ListEvents(ctx, path, query, timeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	summaries := make([]EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, toEventSummary(event))
	}
	return summaries, nil
}

// CreateEvent validates and assembles the event payload, then creates the
// event in the user's default calendar.
func (c *Client) CreateEvent(ctx context.Context, userID string, input EventInput) (*graph.Event, error) {
	payload, err := BuildEventPayload(input)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/users/%s/events", url.PathEscape(userID))
	var created graph.Event
	if err := c.graph.PostJSON(ctx, path, payload, &created); err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return &created, nil
}
