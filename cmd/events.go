package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"outlook-calendar-mcp/internal/azure"
	"outlook-calendar-mcp/internal/server"
)

func newEventsCmd() *cobra.Command {
	var (
		userID   string
		days     int
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List upcoming calendar events",
		Long: `List calendar events for the coming days without starting an MCP server.
Reads the same Azure credentials and USER_ID configuration as the serve command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(".env"); err == nil {
				if err := godotenv.Load(); err != nil {
					return fmt.Errorf("failed to load .env: %w", err)
				}
			}

			creds, err := azure.ConfigFromEnv()
			if err != nil {
				return err
			}

			ctx := context.Background()
			sc, err := server.NewServerContext(ctx, creds, os.Getenv(envUserID), timezone)
			if err != nil {
				return fmt.Errorf("failed to create server context: %w", err)
			}
			defer func() {
				_ = sc.Shutdown()
			}()

			resolved, err := sc.ResolveUserID(userID)
			if err != nil {
				return err
			}

			loc, err := time.LoadLocation(timezone)
			if err != nil {
				return fmt.Errorf("invalid timezone %q: %w", timezone, err)
			}

			now := time.Now().In(loc)
			start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
			end := start.AddDate(0, 0, days)

			events, err := sc.CalendarClient().ListEvents(ctx, resolved, start, end, timezone)
			if err != nil {
				return err
			}

			fmt.Printf("Found %d events in the next %d day(s)\n", len(events), days)
			for _, event := range events {
				fmt.Printf("\n- %s\n", event.Subject)
				fmt.Printf("  %s – %s (%s)\n", event.Start.DateTime, event.End.DateTime, event.Start.TimeZone)
				if event.Organizer.Email != "" {
					fmt.Printf("  Organizer: %s (%s)\n", event.Organizer.Name, event.Organizer.Email)
				}
				if event.WebLink != "" {
					fmt.Printf("  %s\n", event.WebLink)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", server.UserAlias, "User ID or email address. 'me' resolves to USER_ID.")
	cmd.Flags().IntVar(&days, "days", 7, "Number of days to list, starting today")
	cmd.Flags().StringVar(&timezone, "timezone", defaultTimeZone, "IANA timezone for the date window")

	return cmd
}
