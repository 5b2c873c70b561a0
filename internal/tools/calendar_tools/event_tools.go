package calendar_tools

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"outlook-calendar-mcp/internal/calendar"
	"outlook-calendar-mcp/internal/graph"
	"outlook-calendar-mcp/internal/instrumentation"
	"outlook-calendar-mcp/internal/recurrence"
	"outlook-calendar-mcp/internal/server"
	"outlook-calendar-mcp/internal/timeutil"
	"outlook-calendar-mcp/internal/tools/common"
)

// previewLimit caps the body preview length in event listings.
const previewLimit = 100

// RegisterEventTools registers event-related tools with the MCP server
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List events tool
	getEventsTool := mcp.NewTool("get-calendar-events",
		mcp.WithDescription("Fetch calendar events within a date range"),
		mcp.WithString("user_id",
			mcp.DefaultString(server.UserAlias),
			mcp.Description("User ID or email address. 'me' resolves to the configured default user."),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date (YYYY-MM-DD). Defaults to today."),
		),
		mcp.WithString("end_date",
			mcp.Description("End date (YYYY-MM-DD), inclusive. Defaults to tomorrow."),
		),
		mcp.WithString("timezone",
			mcp.DefaultString("Asia/Manila"),
			mcp.Description("IANA timezone for interpreting the dates and localizing output"),
		),
	)

	s.AddTool(getEventsTool, common.InstrumentedToolHandlerWithService(
		"get-calendar-events", instrumentation.ServiceCalendar, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCalendarEvents(ctx, request, sc)
		},
	))

	// Create event tool
	createEventTool := mcp.NewTool("create-calendar-event",
		mcp.WithDescription("Create a calendar event, optionally recurring and with an online meeting"),
		mcp.WithString("user_id",
			mcp.DefaultString(server.UserAlias),
			mcp.Description("User ID or email address. 'me' resolves to the configured default user."),
		),
		mcp.WithString("subject",
			mcp.DefaultString("Team Sync Meeting"),
			mcp.Description("Event title"),
		),
		mcp.WithString("start_datetime",
			mcp.Description("Start as a civil datetime (YYYY-MM-DDTHH:MM:SS) in the event timezone. Defaults to one hour from now."),
		),
		mcp.WithString("end_datetime",
			mcp.Description("End as a civil datetime (YYYY-MM-DDTHH:MM:SS) in the event timezone. Defaults to one hour after the start."),
		),
		mcp.WithString("timezone",
			mcp.DefaultString("Asia/Manila"),
			mcp.Description("IANA timezone of the event"),
		),
		mcp.WithString("content",
			mcp.Description("HTML body of the event"),
		),
		mcp.WithString("location",
			mcp.Description("Display name of the event location"),
		),
		mcp.WithString("importance",
			mcp.DefaultString("Normal"),
			mcp.Enum("Low", "Normal", "High"),
			mcp.Description("Event importance"),
		),
		mcp.WithBoolean("is_online_meeting",
			mcp.DefaultBool(true),
			mcp.Description("Create the event as an online meeting"),
		),
		mcp.WithArray("attendees",
			mcp.Description("Attendee email addresses. Entries without '@' are dropped."),
		),
		mcp.WithBoolean("is_recurring",
			mcp.DefaultBool(false),
			mcp.Description("Create the event as a recurring series"),
		),
		mcp.WithString("recurrence_type",
			mcp.Enum("daily", "weekly", "monthly", "yearly",
				"absoluteMonthly", "relativeMonthly", "absoluteYearly", "relativeYearly"),
			mcp.Description("Recurrence pattern type (required when is_recurring is true)"),
		),
		mcp.WithNumber("recurrence_interval",
			mcp.DefaultNumber(1),
			mcp.Description("Number of pattern units between occurrences"),
		),
		mcp.WithArray("days_of_week",
			mcp.Description("Weekday names for weekly patterns (e.g. ['monday','wednesday']). Derived from the start when omitted."),
		),
		mcp.WithNumber("month_day",
			mcp.Description("Day of month for absoluteMonthly patterns. Derived from the start when omitted."),
		),
		mcp.WithString("week_day",
			mcp.Description("Weekday name for relativeMonthly patterns. Derived from the start when omitted."),
		),
		mcp.WithString("week_index",
			mcp.Enum("first", "second", "third", "fourth", "last"),
			mcp.Description("Week-of-month index for relativeMonthly patterns. Derived from the start when omitted."),
		),
		mcp.WithString("recurrence_range_type",
			mcp.DefaultString("noEnd"),
			mcp.Enum("endDate", "noEnd", "numbered"),
			mcp.Description("How the series ends"),
		),
		mcp.WithString("recurrence_end_date",
			mcp.Description("Last date of the series (YYYY-MM-DD), required for range type endDate"),
		),
		mcp.WithNumber("recurrence_occurrences",
			mcp.Description("Total occurrences, required for range type numbered"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithService(
		"create-calendar-event", instrumentation.ServiceCalendar, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateCalendarEvent(ctx, request, sc)
		},
	))

	return nil
}

func handleGetCalendarEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	userID, err := sc.ResolveUserID(common.GetUserFromArgs(args))
	if err != nil {
		return common.NewToolErrorResult(err.Error()), nil
	}

	timeZone := stringArg(args, "timezone", sc.DefaultTimeZone())
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return common.NewToolErrorResultf("invalid timezone %q: %v", timeZone, err), nil
	}

	now := time.Now().In(loc)
	startDate := stringArg(args, "start_date", now.Format(timeutil.DateLayout))
	endDate := stringArg(args, "end_date", now.AddDate(0, 0, 1).Format(timeutil.DateLayout))

	start, end, err := timeutil.DayWindow(startDate, endDate, timeZone)
	if err != nil {
		return common.NewToolErrorResult(err.Error()), nil
	}

	events, err := sc.CalendarClient().ListEvents(ctx, userID, start, end, timeZone)
	if err != nil {
		return common.NewToolErrorResult(err.Error()), nil
	}

	return common.NewDualResult(formatEventList(events, startDate, endDate, timeZone), events)
}

func handleCreateCalendarEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	userID, err := sc.ResolveUserID(common.GetUserFromArgs(args))
	if err != nil {
		return common.NewToolErrorResult(err.Error()), nil
	}

	timeZone := stringArg(args, "timezone", sc.DefaultTimeZone())
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return common.NewToolErrorResultf("invalid timezone %q: %v", timeZone, err), nil
	}

	// Default window: one hour, starting one hour from now.
	defaultStart := time.Now().In(loc).Add(time.Hour)
	input := calendar.EventInput{
		Subject:         stringArg(args, "subject", "Team Sync Meeting"),
		StartDateTime:   stringArg(args, "start_datetime", defaultStart.Format(timeutil.DateTimeLayout)),
		TimeZone:        timeZone,
		Content:         stringArg(args, "content", ""),
		Location:        stringArg(args, "location", ""),
		Importance:      stringArg(args, "importance", "Normal"),
		IsOnlineMeeting: boolArg(args, "is_online_meeting", true),
		Attendees:       stringListArg(args, "attendees"),
		IsRecurring:     boolArg(args, "is_recurring", false),
	}
	input.EndDateTime = stringArg(args, "end_datetime", defaultEndFor(input.StartDateTime, timeZone, defaultStart))

	if input.IsRecurring {
		interval, err := intArg(args, "recurrence_interval")
		if err != nil {
			return common.NewToolErrorResult(err.Error()), nil
		}
		monthDay, err := intArg(args, "month_day")
		if err != nil {
			return common.NewToolErrorResult(err.Error()), nil
		}
		occurrences, err := intArg(args, "recurrence_occurrences")
		if err != nil {
			return common.NewToolErrorResult(err.Error()), nil
		}

		input.Recurrence = recurrence.Description{
			Type:       recurrence.PatternType(stringArg(args, "recurrence_type", "")),
			Interval:   interval,
			DaysOfWeek: stringListArg(args, "days_of_week"),
			MonthDay:   monthDay,
			WeekDay:    stringArg(args, "week_day", ""),
			WeekIndex:  stringArg(args, "week_index", ""),
			Range: recurrence.RangeDescription{
				Type:        recurrence.RangeType(stringArg(args, "recurrence_range_type", "noEnd")),
				EndDate:     stringArg(args, "recurrence_end_date", ""),
				Occurrences: occurrences,
			},
		}
	}

	created, err := sc.CalendarClient().CreateEvent(ctx, userID, input)
	if err != nil {
		return common.NewToolErrorResult(err.Error()), nil
	}

	return common.NewDualResult(formatCreatedEvent(created, timeZone), created)
}

// defaultEndFor returns the instant one hour after the event start, formatted
// as a civil datetime. Falls back to one hour after the default start when
// the caller-supplied start does not parse; the payload validation reports
// the bad start itself.
func defaultEndFor(startDateTime, timeZone string, defaultStart time.Time) string {
	start, err := timeutil.ParseDateTime(startDateTime, timeZone)
	if err != nil {
		start = defaultStart
	}
	return start.Add(time.Hour).Format(timeutil.DateTimeLayout)
}

func formatEventList(events []calendar.EventSummary, startDate, endDate, timeZone string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d events between %s and %s\n", len(events), startDate, endDate)

	for _, event := range events {
		fmt.Fprintf(&b, "\n- %s\n", event.Subject)
		fmt.Fprintf(&b, "  Start: %s\n", formatEventTime(event.Start, timeZone))
		fmt.Fprintf(&b, "  End: %s\n", formatEventTime(event.End, timeZone))
		if event.Organizer.Email != "" {
			fmt.Fprintf(&b, "  Organizer: %s (%s)\n", event.Organizer.Name, event.Organizer.Email)
		} else {
			fmt.Fprintf(&b, "  Organizer: %s\n", event.Organizer.Name)
		}
		if len(event.Attendees) > 0 {
			fmt.Fprintf(&b, "  Attendees:\n")
			for _, att := range event.Attendees {
				if att.Name != "" && att.Name != att.Email {
					fmt.Fprintf(&b, "    - %s (%s)\n", att.Name, att.Email)
				} else {
					fmt.Fprintf(&b, "    - %s\n", att.Email)
				}
			}
		}
		if event.BodyPreview != "" {
			fmt.Fprintf(&b, "  Preview: %s\n", truncatePreview(event.BodyPreview))
		}
		if event.WebLink != "" {
			fmt.Fprintf(&b, "  Link: %s\n", event.WebLink)
		}
	}

	return b.String()
}

func formatCreatedEvent(event *graph.Event, timeZone string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Created event: %s\n", event.Subject)
	if event.Start != nil {
		fmt.Fprintf(&b, "Start: %s\n", formatEventTime(*event.Start, timeZone))
	}
	if event.End != nil {
		fmt.Fprintf(&b, "End: %s\n", formatEventTime(*event.End, timeZone))
	}
	if event.Location != nil && event.Location.DisplayName != "" {
		fmt.Fprintf(&b, "Location: %s\n", event.Location.DisplayName)
	}
	if event.OnlineMeeting != nil && event.OnlineMeeting.JoinURL != "" {
		fmt.Fprintf(&b, "Join: %s\n", event.OnlineMeeting.JoinURL)
	}
	if len(event.Attendees) > 0 {
		fmt.Fprintf(&b, "Attendees:\n")
		for _, att := range event.Attendees {
			fmt.Fprintf(&b, "  - %s\n", att.EmailAddress.Address)
		}
	}
	if event.Recurrence != nil {
		fmt.Fprintf(&b, "Recurs: %s every %d\n", event.Recurrence.Pattern.Type, event.Recurrence.Pattern.Interval)
	}
	if event.WebLink != "" {
		fmt.Fprintf(&b, "Link: %s\n", event.WebLink)
	}
	return b.String()
}

// formatEventTime renders a Graph datetime for display in the requested
// zone. Graph datetimes may carry fractional seconds; those are dropped
// before parsing. Unparseable values are shown verbatim.
func formatEventTime(dt graph.DateTimeTimeZone, timeZone string) string {
	value := dt.DateTime
	if dot := strings.IndexByte(value, '.'); dot >= 0 {
		value = value[:dot]
	}

	zone := dt.TimeZone
	if zone == "" {
		zone = timeZone
	}

	t, err := timeutil.ParseDateTime(value, zone)
	if err != nil {
		return dt.DateTime
	}
	return timeutil.FormatInZone(t, timeZone)
}

func truncatePreview(preview string) string {
	runes := []rune(preview)
	if len(runes) <= previewLimit {
		return preview
	}
	return string(runes[:previewLimit]) + "..."
}

func stringArg(args map[string]interface{}, key, fallback string) string {
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

func boolArg(args map[string]interface{}, key string, fallback bool) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return fallback
}

// intArg reads a numeric argument. JSON numbers arrive as float64; fractional
// values are rejected rather than truncated.
func intArg(args map[string]interface{}, key string) (int, error) {
	switch value := args[key].(type) {
	case float64:
		if value != math.Trunc(value) {
			return 0, fmt.Errorf("%s must be a whole number, got %v", key, value)
		}
		return int(value), nil
	case int:
		return value, nil
	}
	return 0, nil
}

func stringListArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
