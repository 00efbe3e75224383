package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/timetrack-cli/internal/duration"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

func newFormatCmd(app *app) *cobra.Command {
	var (
		format    string
		unit      bool
		unitLabel string
		places    int
		locale    string
	)

	cmd := &cobra.Command{
		Use:   "format <seconds>",
		Short: "Format a number of seconds as hours",
		Example: `  tt format 5400                    # 1:30
  tt format 5400 --format decimal   # 1,50
  tt format 5400 --format decimal --locale en --unit   # 1.50 h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil {
				return fmt.Errorf("invalid seconds %q: %w", args[0], err)
			}

			display := app.config.Display
			if cmd.Flags().Changed("format") {
				if display.Format, err = duration.ParseFormat(format); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("places") {
				display.DecimalPlaces = places
			}
			if cmd.Flags().Changed("locale") {
				if display.Locale, err = language.Parse(locale); err != nil {
					return fmt.Errorf("invalid locale %q: %w", locale, err)
				}
			}

			opts := display.Options()
			if unit || cmd.Flags().Changed("unit-label") {
				opts = append(opts, duration.IncludeUnit(), duration.UnitLabel(unitLabel))
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), duration.FormatSeconds(seconds, display.Format, opts...))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format (clock|decimal, default from config)")
	cmd.Flags().BoolVar(&unit, "unit", false, "Append the unit label")
	cmd.Flags().StringVar(&unitLabel, "unit-label", "h", "Unit label")
	cmd.Flags().IntVar(&places, "places", 2, "Decimal places")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale for the decimal separator (default from config)")

	return cmd
}

func (a *app) formatHours(seconds int64) string {
	opts := append([]duration.Option{duration.IncludeUnit()}, a.config.Display.Options()...)
	return duration.FormatSeconds(float64(seconds), a.config.Display.Format, opts...)
}
