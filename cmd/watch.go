package cmd

import (
	"time"

	"github.com/bnema/timetrack-cli/internal/adapters/render/watch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var (
		interval     time.Duration
		pollInterval time.Duration
		inline       bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live timer for the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracking, err := app.trackingService(cmd.Context())
			if err != nil {
				return err
			}

			opts := watch.Options{
				Profile:      string(app.profile.ID),
				TickInterval: app.config.Watch.Interval,
				PollInterval: app.config.Watch.PollInterval,
				Format:       app.config.Display.Format,
				Duration:     app.config.Display.Options(),
				Logger:       app.logger,
			}
			if cmd.Flags().Changed("interval") {
				opts.TickInterval = interval
			}
			if cmd.Flags().Changed("poll") {
				opts.PollInterval = pollInterval
			}

			programOpts := []tea.ProgramOption{
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			}
			if !inline {
				programOpts = append(programOpts, tea.WithAltScreen())
			}

			return watch.Run(cmd.Context(), tracking, opts, programOpts...)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Timer refresh interval")
	cmd.Flags().DurationVar(&pollInterval, "poll", 30*time.Second, "Server poll interval")
	cmd.Flags().BoolVar(&inline, "inline", false, "Render inline instead of the alternate screen")

	return cmd
}
