package graph

// DateTimeTimeZone is the Graph representation of a civil datetime paired
// with an IANA or Windows timezone name.
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// EmailAddress identifies a mailbox with an optional display name.
type EmailAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// Recipient wraps an email address, as used for organizers.
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// ResponseStatus carries an attendee's reply to an invitation.
type ResponseStatus struct {
	Response string `json:"response,omitempty"`
	Time     string `json:"time,omitempty"`
}

// Attendee is an invited participant. Type is one of "required", "optional"
// or "resource".
type Attendee struct {
	EmailAddress EmailAddress    `json:"emailAddress"`
	Type         string          `json:"type,omitempty"`
	Status       *ResponseStatus `json:"status,omitempty"`
}

// ItemBody is the event description with its content type.
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Location names where an event takes place.
type Location struct {
	DisplayName string `json:"displayName"`
}

// OnlineMeetingInfo carries the join URL of an online meeting.
type OnlineMeetingInfo struct {
	JoinURL string `json:"joinUrl,omitempty"`
}

// RecurrencePattern is the cyclic rule of a recurring series: how often and
// on which days it repeats.
type RecurrencePattern struct {
	Type       string   `json:"type"`
	Interval   int      `json:"interval"`
	DaysOfWeek []string `json:"daysOfWeek,omitempty"`
	DayOfMonth int      `json:"dayOfMonth,omitempty"`
	Month      int      `json:"month,omitempty"`
	Index      string   `json:"index,omitempty"`
}

// RecurrenceRange bounds a recurring series: when it starts and when, if
// ever, it stops.
type RecurrenceRange struct {
	Type                string `json:"type"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate,omitempty"`
	NumberOfOccurrences int    `json:"numberOfOccurrences,omitempty"`
	RecurrenceTimeZone  string `json:"recurrenceTimeZone,omitempty"`
}

// PatternedRecurrence is the nested recurrence structure the Graph API
// requires on recurring events.
type PatternedRecurrence struct {
	Pattern RecurrencePattern `json:"pattern"`
	Range   RecurrenceRange   `json:"range"`
}

// Event is the Graph event shape, used both as the create payload and as the
// projection source for calendarView results.
type Event struct {
	ID                string               `json:"id,omitempty"`
	Subject           string               `json:"subject"`
	Body              *ItemBody            `json:"body,omitempty"`
	BodyPreview       string               `json:"bodyPreview,omitempty"`
	Start             *DateTimeTimeZone    `json:"start,omitempty"`
	End               *DateTimeTimeZone    `json:"end,omitempty"`
	Location          *Location            `json:"location,omitempty"`
	Attendees         []Attendee           `json:"attendees,omitempty"`
	Organizer         *Recipient           `json:"organizer,omitempty"`
	IsOnlineMeeting   bool                 `json:"isOnlineMeeting"`
	OnlineMeeting     *OnlineMeetingInfo   `json:"onlineMeeting,omitempty"`
	Importance        string               `json:"importance,omitempty"`
	ResponseRequested bool                 `json:"responseRequested"`
	WebLink           string               `json:"webLink,omitempty"`
	Recurrence        *PatternedRecurrence `json:"recurrence,omitempty"`
}

// eventPage is one page of a collection response, with the continuation link
// Graph emits when more results remain.
type eventPage struct {
	Value    []Event `json:"value"`
	NextLink string  `json:"@odata.nextLink"`
}

// apiError is the Graph error envelope.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
