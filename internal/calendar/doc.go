// Package calendar provides calendar operations against the Microsoft Graph
// API: listing events in a date window via calendarView and creating events,
// including recurring ones.
//
// Listing drains every continuation page and projects raw Graph events into
// a compact query-facing shape. Creation assembles the Graph payload from
// flat input, translating recurrence descriptions through the recurrence
// package.
//
// Example usage:
//
//	client := calendar.NewClient(graphClient)
//	events, err := client.ListEvents(ctx, "me", start, end, "Asia/Manila")
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
