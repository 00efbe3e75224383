package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// skipWireAnnotation marks commands that run without config or profiles.
const skipWireAnnotation = "tt/skip-wire"

type rootOptions struct {
	profile    string
	configFile string
	logLevel   string
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "tt",
		Short:         "TimeTrack CLI (tt): clock work sessions from the terminal",
		Long:          "tt talks to a TimeTrack server: start, pause and stop work sessions, watch the live timer and review daily totals with overtime.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] == "true" {
				return nil
			}
			return app.wire(cmd, *opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.profile, "profile", "p", "", "Profile to use (default: current profile)")
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: ~/.config/timetrack/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newWatchCmd(app),
		newStartCmd(app),
		newPauseCmd(app),
		newStopCmd(app),
		newAddCmd(app),
		newDayCmd(app),
		newFormatCmd(app),
		newProfileCmd(app),
		newAuthCmd(app),
		newPingCmd(app),
	)

	return rootCmd
}
