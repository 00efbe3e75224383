package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/spf13/cobra"
)

// Accepted --from/--to layouts besides RFC3339. Clock-only values are taken
// on --date.
var (
	clockLayouts    = []string{"15:04", "15:04:05"}
	dateTimeLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02T15:04:05"}
)

func newAddCmd(app *app) *cobra.Command {
	var (
		from    string
		to      string
		date    string
		project string
		tags    []string
		comment string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a finished work session after the fact",
		Example: `  tt add --from 08:00 --to 12:15 --project billing
  tt add --date 2024-03-04 --from 13:00 --to 17:30 -m "workshop"
  tt add --from "2024-03-04 22:00" --to "2024-03-05 01:30"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracking, err := app.trackingService(cmd.Context())
			if err != nil {
				return err
			}

			loc := tracking.Location()
			day := tracking.Today()
			if date != "" {
				if day, err = domain.ParseDay(date); err != nil {
					return err
				}
			}

			start, err := parseSessionTime(from, day, loc)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := parseSessionTime(to, day, loc)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			status, err := tracking.Add(cmd.Context(), application.AddCommand{
				Start:   start,
				End:     end,
				Project: project,
				Tags:    tags,
				Comment: comment,
			})
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start time (HH:MM, YYYY-MM-DD HH:MM or RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "End time (HH:MM, YYYY-MM-DD HH:MM or RFC3339)")
	cmd.Flags().StringVar(&date, "date", "", "Day for HH:MM times (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (repeatable or comma separated)")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func parseSessionTime(raw string, day domain.Day, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return parsed, nil
		}
	}
	for _, layout := range clockLayouts {
		if clock, err := time.Parse(layout, raw); err == nil {
			return time.Date(day.Year, day.Month, day.Day, clock.Hour(), clock.Minute(), clock.Second(), 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time %q", raw)
}
