package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStartCmd(app *app) *cobra.Command {
	var (
		project string
		tags    []string
		comment string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracking, err := app.trackingService(cmd.Context())
			if err != nil {
				return err
			}

			status, err := tracking.Start(cmd.Context(), application.StartCommand{
				Project: project,
				Tags:    tags,
				Comment: comment,
			})
			if err != nil {
				if errors.Is(err, domain.ErrSessionConflict) {
					return fmt.Errorf("%w (pause with `tt pause` or finish it with `tt stop`)", err)
				}
				return err
			}

			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (repeatable or comma separated)")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newPauseCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "pause",
		Aliases: []string{"resume"},
		Short:   "Pause the running session, or resume a paused one",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracking, err := app.trackingService(cmd.Context())
			if err != nil {
				return err
			}

			status, action, err := tracking.TogglePause(cmd.Context())
			if err != nil {
				if application.IsNoActiveSession(err) {
					return fmt.Errorf("nothing to pause: %w", domain.ErrNoActiveSession)
				}
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					Action domain.PauseAction `json:"action"`
					statusJSON
				}{Action: action, statusJSON: toStatusJSON(app, status)})
			}

			verb := "Paused"
			if action == domain.PauseActionResumed {
				verb = "Resumed"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s at %s (worked %s, paused %s)\n",
				verb,
				status.CheckedAt.Local().Format("15:04:05"),
				status.Runtime.RuntimeText,
				app.formatHours(status.Runtime.PausedSeconds),
			)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newStopCmd(app *app) *cobra.Command {
	var (
		comment string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracking, err := app.trackingService(cmd.Context())
			if err != nil {
				return err
			}

			status, err := tracking.Stop(cmd.Context(), comment)
			if err != nil {
				if application.IsNoActiveSession(err) {
					return fmt.Errorf("nothing to stop: %w", domain.ErrNoActiveSession)
				}
				return err
			}

			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
