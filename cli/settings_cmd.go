package cli

import (
	"fmt"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/core/settings"
	"github.com/irsalhamdi/realty-training/prefs"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the platform branding",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Settings are public; on failure the defaults are shown.
			if err := app.Settings.Load(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), Describe(err))
			}

			s := app.Settings.Get()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Company:          %s\n", s.CompanyName)
			fmt.Fprintf(out, "Login title:      %s\n", s.LoginTitle)
			fmt.Fprintf(out, "Login subtitle:   %s\n", s.LoginSubtitle)
			fmt.Fprintf(out, "Logo:             %s\n", s.LogoURL)
			fmt.Fprintf(out, "Login background: %s\n", s.LoginBackgroundURL)
			fmt.Fprintf(out, "Banner:           %s\n", s.BannerURL)
			fmt.Fprintf(out, "Theme:            %s\n", s.Theme)
			return nil
		},
	}

	cmd.AddCommand(newSettingsSetCmd(app))
	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the platform branding (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.login(ctx); err != nil {
				return err
			}

			var up settings.SettingsUp
			flags := cmd.Flags()
			for name, dst := range map[string]**string{
				"logo":       &up.LogoURL,
				"company":    &up.CompanyName,
				"background": &up.LoginBackgroundURL,
				"banner":     &up.BannerURL,
				"title":      &up.LoginTitle,
				"subtitle":   &up.LoginSubtitle,
				"theme":      &up.Theme,
			} {
				if flags.Changed(name) {
					val, _ := flags.GetString(name)
					*dst = &val
				}
			}

			if err := app.Settings.Save(ctx, up); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
			return nil
		},
	}

	cmd.Flags().String("logo", "", "Logo URL")
	cmd.Flags().String("company", "", "Company name")
	cmd.Flags().String("background", "", "Login background URL")
	cmd.Flags().String("banner", "", "Banner image URL")
	cmd.Flags().String("title", "", "Login title")
	cmd.Flags().String("subtitle", "", "Login subtitle")
	cmd.Flags().String("theme", "", "Default theme, dark or light")

	return cmd
}

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|dark|light]",
		Short:     "Show or change the local theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle", settings.ThemeDark, settings.ThemeLight},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Prefs
			if len(args) == 1 {
				switch args[0] {
				case "toggle":
					p = p.Toggle()
				default:
					p.Theme = args[0]
				}
				if err := prefs.Save(app.PrefsPath, p); err != nil {
					return err
				}
				app.Prefs = p
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", p.Theme)
			return nil
		},
	}
}

func newRememberCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remember",
		Short: "Save the current --api and --email as defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Email == "" {
				return apperr.Validation("--email is required")
			}

			p := app.Prefs
			p.API = app.API
			p.Email = app.Email
			if err := prefs.Save(app.PrefsPath, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s for %s in %s\n", p.API, p.Email, app.PrefsPath)
			return nil
		},
	}
}
