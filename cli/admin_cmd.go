package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/irsalhamdi/realty-training/core/catalog"
	"github.com/irsalhamdi/realty-training/core/claims"
	"github.com/irsalhamdi/realty-training/core/user"
	"github.com/irsalhamdi/realty-training/random"
	"github.com/spf13/cobra"
)

const generatedPasswordLen = 12

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage videos, categories, the banner and users",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			return app.loadCatalog(cmd.Context())
		},
	}

	cmd.AddCommand(
		newAdminVideoCmd(app),
		newAdminCategoryCmd(app),
		newAdminBannerCmd(app),
		newAdminUserCmd(app),
	)

	return cmd
}

func videoFormFlags(cmd *cobra.Command, f *catalog.VideoForm, difficulty *string) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Title")
	cmd.Flags().StringVar(&f.Description, "description", "", "Description")
	cmd.Flags().StringVar(&f.URL, "url", "", "YouTube URL")
	cmd.Flags().StringVar(&f.CategoryID, "category", "", "Category ID")
	cmd.Flags().StringVar(&f.Duration, "duration", "", "Display duration, e.g. \"45 min\"")
	cmd.Flags().StringVar(&f.Thumbnail, "thumbnail", "", "Thumbnail URL, derived from the video when empty")
	cmd.Flags().StringVar(difficulty, "difficulty", "", "Beginner, Intermediate or Advanced")
}

func newAdminVideoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Manage videos",
	}

	var add catalog.VideoForm
	var addDifficulty string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Upload a video by YouTube URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			add.Difficulty = catalog.Difficulty(addDifficulty)
			v, err := app.Catalog.CreateVideo(cmd.Context(), add)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created video %s (youtube %s)\n", v.ID, v.YoutubeID)
			return nil
		},
	}
	videoFormFlags(addCmd, &add, &addDifficulty)

	var edit catalog.VideoForm
	var editDifficulty string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the given fields of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit.Difficulty = catalog.Difficulty(editDifficulty)
			if err := app.Catalog.UpdateVideo(cmd.Context(), args[0], edit); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated video %s\n", args[0])
			return nil
		},
	}
	videoFormFlags(editCmd, &edit, &editDifficulty)

	var yes bool
	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirmed(yes, "a video"); err != nil {
				return err
			}
			if err := app.Catalog.DeleteVideo(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted video %s\n", args[0])
			return nil
		},
	}
	rmCmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	cmd.AddCommand(addCmd, editCmd, rmCmd)
	return cmd
}

func newAdminCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	var add catalog.CategoryForm
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Catalog.CreateCategory(cmd.Context(), add)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %s\n", c.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&add.Name, "name", "", "Name")
	addCmd.Flags().StringVar(&add.Icon, "icon", "", "Icon name, "+catalog.DefaultIcon+" when empty")

	var edit catalog.CategoryForm
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a category or change its icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.UpdateCategory(cmd.Context(), args[0], edit); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated category %s\n", args[0])
			return nil
		},
	}
	editCmd.Flags().StringVar(&edit.Name, "name", "", "Name")
	editCmd.Flags().StringVar(&edit.Icon, "icon", "", "Icon name")

	var yes bool
	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category and all its videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirmed(yes, "a category and its videos"); err != nil {
				return err
			}
			if err := app.Catalog.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return nil
		},
	}
	rmCmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	cmd.AddCommand(addCmd, editCmd, rmCmd)
	return cmd
}

func newAdminBannerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banner",
		Short: "Manage the hero video",
	}

	var f catalog.BannerForm
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Put a video in the hero slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.SetBanner(cmd.Context(), f); err != nil {
				return err
			}
			b, _ := app.Catalog.Banner()
			fmt.Fprintf(cmd.OutOrStdout(), "Banner set to %q\n", b.Title)
			return nil
		},
	}
	setCmd.Flags().StringVar(&f.Title, "title", "", "Title")
	setCmd.Flags().StringVar(&f.Description, "description", "", "Description")
	setCmd.Flags().StringVar(&f.URL, "url", "", "YouTube URL")
	setCmd.Flags().StringVar(&f.Thumbnail, "thumbnail", "", "Thumbnail URL, derived from the video when empty")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the hero slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.ClearBanner(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Banner cleared")
			return nil
		},
	}

	cmd.AddCommand(setCmd, clearCmd)
	return cmd
}

func newAdminUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Users.Load(cmd.Context()); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCREATED")
			for _, u := range app.Users.Users() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}

	var f user.UserForm
	var role string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Users.Load(ctx); err != nil {
				return err
			}

			generated := f.Password == ""
			if generated {
				pass, err := random.StringSecure(generatedPasswordLen)
				if err != nil {
					return fmt.Errorf("generating password: %w", err)
				}
				f.Password = pass
			}
			f.Role = claims.Role(role)

			u, err := app.Users.Create(ctx, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s account %s for %s\n", u.Role, u.ID, u.Email)
			if generated {
				fmt.Fprintf(out, "Initial password: %s\n", f.Password)
			}
			return nil
		},
	}
	addCmd.Flags().StringVar(&f.Name, "name", "", "Full name")
	addCmd.Flags().StringVar(&f.Email, "email", "", "Email")
	addCmd.Flags().StringVar(&f.Password, "password", "", "Password, generated when empty")
	addCmd.Flags().StringVar(&role, "role", string(claims.RoleUser), "user or admin")

	var yes bool
	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirmed(yes, "an account"); err != nil {
				return err
			}
			if err := app.Users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
			return nil
		},
	}
	rmCmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	cmd.AddCommand(lsCmd, addCmd, rmCmd)
	return cmd
}
