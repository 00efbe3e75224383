package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/spf13/cobra"
)

type dayJSON struct {
	Day             string   `json:"day"`
	WorkSeconds     int64    `json:"work_seconds"`
	PauseSeconds    int64    `json:"pause_seconds"`
	ExpectedSeconds int64    `json:"expected_seconds"`
	VacationSeconds int64    `json:"vacation_seconds"`
	SickSeconds     int64    `json:"sick_seconds"`
	OvertimeSeconds int64    `json:"overtime_seconds"`
	Work            string   `json:"work"`
	Overtime        string   `json:"overtime"`
	IsWeekend       bool     `json:"is_weekend"`
	IsHoliday       bool     `json:"is_holiday"`
	HolidayName     string   `json:"holiday_name,omitempty"`
	LeaveTypes      []string `json:"leave_types,omitempty"`
	Live            bool     `json:"live"`
}

func newDayCmd(app *app) *cobra.Command {
	var (
		date   string
		days   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show work, pause and overtime per day",
		Long:  "Show daily totals ending at --date (default today). The running session is added to today's totals.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return fmt.Errorf("%w: --days must be at least 1", domain.ErrInvalidDayRange)
			}

			tracking, err := app.trackingService(cmd.Context())
			if err != nil {
				return err
			}

			to := tracking.Today()
			if date != "" {
				to, err = domain.ParseDay(date)
				if err != nil {
					return err
				}
			}
			from := to.AddDays(-(days - 1))

			var totals []application.DayTotals
			err = withSpinner(cmd, "Fetching days...", func(ctx context.Context) error {
				var fetchErr error
				totals, fetchErr = tracking.Days(ctx, from, to)
				return fetchErr
			})
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]dayJSON, 0, len(totals))
				for _, total := range totals {
					out = append(out, toDayJSON(app, total))
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			rendered, err := app.daysRenderer(totals, app.renderOptions())
			if err != nil {
				return fmt.Errorf("render days: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Last day to show (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 1, "Number of days to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func toDayJSON(app *app, total application.DayTotals) dayJSON {
	summary := total.Summary
	return dayJSON{
		Day:             summary.Day.String(),
		WorkSeconds:     summary.WorkSeconds,
		PauseSeconds:    summary.PauseSeconds,
		ExpectedSeconds: summary.ExpectedSeconds,
		VacationSeconds: summary.VacationSeconds,
		SickSeconds:     summary.SickSeconds,
		OvertimeSeconds: total.OvertimeSeconds,
		Work:            app.formatHours(summary.WorkSeconds),
		Overtime:        app.formatHours(total.OvertimeSeconds),
		IsWeekend:       summary.IsWeekend,
		IsHoliday:       summary.IsHoliday,
		HolidayName:     summary.HolidayName,
		LeaveTypes:      summary.LeaveTypes,
		Live:            total.Live,
	}
}
