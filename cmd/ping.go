package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newPingCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the TimeTrack server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracking, err := app.trackingService(cmd.Context())
			if err != nil {
				return err
			}

			started := app.now()
			if err := tracking.Ping(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok %s (%s, %s)\n",
				app.profile.BaseURL,
				app.profile.ID,
				app.now().Sub(started).Round(time.Millisecond),
			)
			return err
		},
	}
}
