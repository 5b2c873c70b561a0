package calendar

import (
	"fmt"
	"strings"

	"outlook-calendar-mcp/internal/graph"
	"outlook-calendar-mcp/internal/recurrence"
	"outlook-calendar-mcp/internal/timeutil"
)

// BuildEventPayload assembles the Graph create payload from validated input.
// Recurring events get their flat recurrence description translated into the
// nested pattern/range structure, with omitted attributes derived from the
// start datetime in the event timezone.
func BuildEventPayload(input EventInput) (*graph.Event, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if input.StartDateTime == "" || input.EndDateTime == "" {
		return nil, fmt.Errorf("start_datetime and end_datetime are required")
	}

	event := &graph.Event{
		Subject: input.Subject,
		Body: &graph.ItemBody{
			ContentType: "html",
			Content:     input.Content,
		},
		Start: &graph.DateTimeTimeZone{
			DateTime: input.StartDateTime,
			TimeZone: input.TimeZone,
		},
		End: &graph.DateTimeTimeZone{
			DateTime: input.EndDateTime,
			TimeZone: input.TimeZone,
		},
		IsOnlineMeeting:   input.IsOnlineMeeting,
		Importance:        normalizeImportance(input.Importance),
		ResponseRequested: true,
		Attendees:         projectAttendees(input.Attendees),
	}

	if input.Location != "" {
		event.Location = &graph.Location{DisplayName: input.Location}
	}

	if input.IsRecurring {
		start, err := timeutil.ParseDateTime(input.StartDateTime, input.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid start_datetime %q: %w", input.StartDateTime, err)
		}
		rec, err := recurrence.Translate(input.Recurrence, start, input.TimeZone)
		if err != nil {
			return nil, err
		}
		event.Recurrence = rec
	}

	return event, nil
}

// projectAttendees filters out entries with no "@" and projects the rest to
// the Graph attendee shape, deriving the display name from the local part.
func projectAttendees(addresses []string) []graph.Attendee {
	var attendees []graph.Attendee
	for _, raw := range addresses {
		address := strings.TrimSpace(raw)
		at := strings.Index(address, "@")
		if at < 0 {
			continue
		}
		attendees = append(attendees, graph.Attendee{
			EmailAddress: graph.EmailAddress{
				Address: address,
				Name:    address[:at],
			},
			Type: "required",
		})
	}
	return attendees
}

// normalizeImportance lowercases the caller's value and falls back to
// "normal" for anything the upstream would reject.
func normalizeImportance(importance string) string {
	switch strings.ToLower(strings.TrimSpace(importance)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "normal"
	}
}
