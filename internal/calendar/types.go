package calendar

import (
	"outlook-calendar-mcp/internal/graph"
	"outlook-calendar-mcp/internal/recurrence"
)

// EventInput represents the input for creating a calendar event. Datetimes
// are civil values ("2006-01-02T15:04:05") interpreted in TimeZone.
type EventInput struct {
	Subject         string
	StartDateTime   string
	EndDateTime     string
	TimeZone        string
	Content         string
	Location        string
	Importance      string
	IsOnlineMeeting bool
	Attendees       []string

	IsRecurring bool
	Recurrence  recurrence.Description
}

// OrganizerSummary identifies the organizer of a listed event.
type OrganizerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// AttendeeSummary identifies an invited participant of a listed event,
// including their invitation type (required, optional or resource) and
// response status when Graph reports them.
type AttendeeSummary struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Type     string `json:"type,omitempty"`
	Response string `json:"response,omitempty"`
}

// EventSummary is the projected, query-facing shape of a listed event.
type EventSummary struct {
	ID          string                 `json:"id"`
	Subject     string                 `json:"subject"`
	Start       graph.DateTimeTimeZone `json:"start"`
	End         graph.DateTimeTimeZone `json:"end"`
	Organizer   OrganizerSummary       `json:"organizer"`
	Attendees   []AttendeeSummary      `json:"attendees"`
	BodyPreview string                 `json:"bodyPreview"`
	WebLink     string                 `json:"webLink"`
}

// toEventSummary projects a raw Graph event into the query-facing shape.
func toEventSummary(event graph.Event) EventSummary {
	summary := EventSummary{
		ID:          event.ID,
		Subject:     event.Subject,
		BodyPreview: event.BodyPreview,
		WebLink:     event.WebLink,
		Organizer:   OrganizerSummary{Name: "Unknown"},
	}
	if summary.Subject == "" {
		summary.Subject = "No subject"
	}

	if event.Start != nil {
		summary.Start = *event.Start
	}
	if event.End != nil {
		summary.End = *event.End
	}

	if event.Organizer != nil && event.Organizer.EmailAddress.Address != "" {
		summary.Organizer = OrganizerSummary{
			Name:  event.Organizer.EmailAddress.Name,
			Email: event.Organizer.EmailAddress.Address,
		}
		if summary.Organizer.Name == "" {
			summary.Organizer.Name = summary.Organizer.Email
		}
	}

	for _, att := range event.Attendees {
		attendee := AttendeeSummary{
			Name:  att.EmailAddress.Name,
			Email: att.EmailAddress.Address,
			Type:  att.Type,
		}
		if att.Status != nil {
			attendee.Response = att.Status.Response
		}
		summary.Attendees = append(summary.Attendees, attendee)
	}

	return summary
}
