package cli

import (
	"errors"
	"fmt"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "catalog" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse and manage the real estate training catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.API, "api", envOr("CATALOG_API", ""), "Backend base URL (default "+defaultAPI+")")
	flags.StringVar(&app.Email, "email", envOr("CATALOG_EMAIL", ""), "Account email")
	flags.StringVar(&app.Password, "password", "", "Account password (or CATALOG_PASSWORD)")
	flags.StringVar(&app.PrefsPath, "prefs", envOr("CATALOG_PREFS", ""), "Preferences file")
	flags.DurationVar(&app.Timeout, "timeout", 0, "Per request timeout, 0 for none")
	flags.BoolVarP(&app.Verbose, "verbose", "v", false, "Log backend requests")

	root.AddCommand(
		newVideosCmd(app),
		newVideoCmd(app),
		newCategoriesCmd(app),
		newWatchCmd(app),
		newDashboardCmd(app),
		newSettingsCmd(app),
		newThemeCmd(app),
		newRememberCmd(app),
		newAdminCmd(app),
	)

	return root
}

// Execute runs the CLI with args and releases the app afterwards.
func Execute(app *App, args []string) error {
	root := NewRootCmd(app)
	root.SetArgs(args)
	err := root.Execute()
	app.Close()
	return err
}

// Describe turns an error into the line shown to the user.
func Describe(err error) string {
	switch {
	case errors.Is(err, apperr.ErrAuthentication):
		return "Invalid credentials."
	case errors.Is(err, apperr.ErrUnauthenticated):
		return "Sign in first."
	case errors.Is(err, apperr.ErrForbidden):
		return "This action needs an admin account."
	case errors.Is(err, apperr.ErrNetwork):
		return fmt.Sprintf("Cannot reach the training backend, try again. (%v)", err)
	case errors.Is(err, apperr.ErrDuplicateEmail):
		return "A user with that email already exists."
	case errors.Is(err, apperr.ErrNotFound):
		return fmt.Sprintf("Not found. (%v)", err)
	}
	return err.Error()
}

// confirmed guards irreversible commands.
func confirmed(yes bool, what string) error {
	if !yes {
		return apperr.Validation(fmt.Sprintf("deleting %s cannot be undone, pass --yes to confirm", what))
	}
	return nil
}
