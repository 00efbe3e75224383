package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage TimeTrack server profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(app),
		newProfileSetCmd(app),
		newProfileUseCmd(app),
	)

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured. Add one with `tt profile set <id> --url <base-url>`.")
				return err
			}

			current, err := app.profiles.Current(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, profile := range profiles {
				marker := " "
				if profile.ID == current {
					marker = "*"
				}
				token := "no token"
				if profile.TokenRef != "" {
					token = "token"
				}
				_, _ = fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", marker, profile.ID, profile.Name, profile.BaseURL, token)
			}
			return w.Flush()
		},
	}
}

func newProfileSetCmd(app *app) *cobra.Command {
	var (
		name      string
		baseURL   string
		webAppURL string
		use       bool
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Create or update a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.profiles.Save(cmd.Context(), application.SaveProfileCommand{
				ID:        args[0],
				Name:      name,
				BaseURL:   baseURL,
				WebAppURL: webAppURL,
			})
			if err != nil {
				return err
			}

			if use {
				if err := app.profiles.Use(cmd.Context(), profile.ID); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved profile %s (%s)\n", profile.ID, profile.BaseURL)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&baseURL, "url", "", "API base URL, e.g. http://127.0.0.1:8080")
	cmd.Flags().StringVar(&webAppURL, "web-url", "", "Web app URL")
	cmd.Flags().BoolVar(&use, "use", false, "Select the profile afterwards")

	return cmd
}

func newProfileUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Select the profile used by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ProfileID(args[0])
			if err := app.profiles.Use(cmd.Context(), id); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "using profile %s\n", id)
			return err
		},
	}
}
