package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session and its runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracking, err := app.trackingService(cmd.Context())
			if err != nil {
				return err
			}

			var status application.Status
			err = withSpinner(cmd, "Fetching session...", func(ctx context.Context) error {
				var fetchErr error
				status, fetchErr = tracking.Status(ctx)
				return fetchErr
			})
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

type sessionJSON struct {
	ID             domain.SessionID `json:"id"`
	Status         string           `json:"status"`
	Project        string           `json:"project,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Comment        string           `json:"comment,omitempty"`
	StartTime      *time.Time       `json:"start_time,omitempty"`
	StopTime       *time.Time       `json:"stop_time,omitempty"`
	LastPauseStart *time.Time       `json:"last_pause_start,omitempty"`
	PausedDuration int64            `json:"paused_duration"`
	TotalSeconds   *int64           `json:"total_seconds,omitempty"`
}

type statusJSON struct {
	Status        string       `json:"status"`
	Runtime       string       `json:"runtime"`
	WorkedSeconds int64        `json:"worked_seconds"`
	PausedSeconds int64        `json:"paused_seconds"`
	Worked        string       `json:"worked"`
	Anomalies     []string     `json:"anomalies,omitempty"`
	CheckedAt     time.Time    `json:"checked_at"`
	Session       *sessionJSON `json:"session"`
}

func toStatusJSON(app *app, status application.Status) statusJSON {
	out := statusJSON{
		Status:        string(status.Runtime.Status),
		Runtime:       status.Runtime.RuntimeText,
		WorkedSeconds: status.Runtime.WorkedSeconds,
		PausedSeconds: status.Runtime.PausedSeconds,
		Worked:        app.formatHours(status.Runtime.WorkedSeconds),
		CheckedAt:     status.CheckedAt.UTC(),
	}
	for _, anomaly := range status.Runtime.Anomalies {
		out.Anomalies = append(out.Anomalies, string(anomaly))
	}

	if session := status.Session; session != nil {
		encoded := &sessionJSON{
			ID:             session.ID,
			Status:         string(session.Status),
			Project:        session.Project,
			Tags:           session.Tags,
			Comment:        session.Comment,
			StopTime:       session.StopTime,
			LastPauseStart: session.LastPauseStart,
			PausedDuration: session.PausedDuration,
			TotalSeconds:   session.TotalSeconds,
		}
		if !session.StartTime.IsZero() {
			start := session.StartTime
			encoded.StartTime = &start
		}
		out.Session = encoded
	}

	return out
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), toStatusJSON(app, status))
	}

	rendered, err := app.statusRenderer(status, app.renderOptions())
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
