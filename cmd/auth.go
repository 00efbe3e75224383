package cmd

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API token of a profile",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var (
		token      string
		tokenStdin bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API token for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tokenStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read token from stdin: %w", err)
				}
				token = line
			}

			err := app.profiles.SetToken(cmd.Context(), application.SetTokenCommand{
				Profile: app.profileID,
				Token:   token,
			})
			if errors.Is(err, application.ErrEmptyToken) {
				return fmt.Errorf("%w: pass --token or --token-stdin", err)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "token stored")
			return err
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "API token")
	cmd.Flags().BoolVar(&tokenStdin, "token-stdin", false, "Read the API token from stdin")
	cmd.MarkFlagsMutuallyExclusive("token", "token-stdin")
	cmd.MarkFlagsOneRequired("token", "token-stdin")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored API token of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.profiles.RemoveToken(cmd.Context(), app.profileID); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "token removed")
			return err
		},
	}
}
