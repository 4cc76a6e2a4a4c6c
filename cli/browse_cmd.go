package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/core/catalog"
	"github.com/irsalhamdi/realty-training/core/progress"
	"github.com/spf13/cobra"
)

func newVideosCmd(app *App) *cobra.Command {
	var f catalog.Filter
	var sortKey string

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Search, filter and sort the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.loadCatalog(ctx); err != nil {
				return err
			}

			f.Sort = catalog.SortKey(sortKey)
			entries, err := app.Catalog.Videos(f)
			if err != nil {
				return err
			}

			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "Match title, description or category name")
	cmd.Flags().StringVarP(&f.CategoryID, "category", "c", catalog.FilterAll, "Category ID or \"all\"")
	cmd.Flags().StringVar(&sortKey, "sort", "", "newest, oldest, rating, views or duration")

	return cmd
}

func newVideoCmd(app *App) *cobra.Command {
	var related int

	cmd := &cobra.Command{
		Use:   "video <id>",
		Short: "Show a video, its progress and related videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.loadCatalog(ctx); err != nil {
				return err
			}

			e, ok := app.Catalog.Video(args[0])
			if !ok {
				return fmt.Errorf("video[%s]: %w", args[0], apperr.ErrNotFound)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n\n", e.Title, e.Description)
			fmt.Fprintf(out, "Category:   %s\n", e.CategoryName)
			fmt.Fprintf(out, "Duration:   %s\n", e.Duration)
			fmt.Fprintf(out, "Difficulty: %s\n", e.Difficulty)
			fmt.Fprintf(out, "Rating:     %.1f (%d views, %s match)\n", e.Rating, e.Views, e.Match)
			fmt.Fprintf(out, "Released:   %s\n", e.ReleaseDate)
			fmt.Fprintf(out, "Watch:      https://www.youtube.com/watch?v=%s\n", e.YoutubeID)

			p, err := app.Tracker.Get(ctx, app.Session.Current().Email, e.ID)
			if err != nil {
				app.Log.WithField("message", err).Warn("progress unavailable")
			} else {
				fmt.Fprintf(out, "Progress:   %.0f%%%s\n", p.Percentage, doneMark(p.Completed))
			}

			if rel := app.Catalog.Related(e.ID, related); len(rel) > 0 {
				fmt.Fprintln(out, "\nRelated:")
				printEntries(out, rel)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&related, "related", 4, "Number of related videos to list")

	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			// A failed load still leaves a catalog to show: the previous
			// one or the default categories.
			if err := app.loadCatalog(cmd.Context()); err != nil {
				if !isRecoverable(err) {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), Describe(err))
				app.Catalog.Fallback()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tICON\tVIDEOS")
			for _, c := range app.Catalog.Categories() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Icon, len(c.Videos))
			}
			return tw.Flush()
		},
	}
}

func newWatchCmd(app *App) *cobra.Command {
	var from, to, total int

	cmd := &cobra.Command{
		Use:   "watch <video-id>",
		Short: "Report playback of a video, one tick per second",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.loadCatalog(ctx); err != nil {
				return err
			}

			e, ok := app.Catalog.Video(args[0])
			if !ok {
				return fmt.Errorf("video[%s]: %w", args[0], apperr.ErrNotFound)
			}
			if total <= 0 {
				total = catalog.DurationMinutes(e.Duration) * 60
			}
			if total <= 0 {
				return apperr.Validation("video has no duration, pass --total")
			}
			if to <= 0 || to > total {
				to = total
			}

			p := watch(ctx, app, e.ID, from, to, total)

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f%% watched, %ds%s\n", e.Title, p.Percentage, p.WatchTime, doneMark(p.Completed))
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Start position in seconds")
	cmd.Flags().IntVar(&to, "to", 0, "End position in seconds, defaults to the end")
	cmd.Flags().IntVar(&total, "total", 0, "Video length in seconds, defaults to the catalog duration")

	return cmd
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize your training progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.login(ctx)
			if err != nil {
				return err
			}

			d, err := app.Tracker.Dashboard(ctx, s.Email)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Completed %d of %d videos (%.0f%%), %d started, %d min watched\n\n",
				d.VideosCompleted, d.TotalVideos, d.CompletionRate, d.VideosStarted, d.TotalWatchTime/60)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tSTARTED\tCOMPLETED\tRATE")
			for _, c := range d.Categories {
				fmt.Fprintf(tw, "%s\t%d\t%d/%d\t%.0f%%\n", c.CategoryName, c.Started, c.Completed, c.TotalVideos, c.CompletionRate)
			}
			return tw.Flush()
		},
	}
}

func printEntries(w io.Writer, entries []catalog.Entry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDURATION\tRATING\tVIEWS\tRELEASED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%d\t%s\n",
			e.ID, e.Title, e.CategoryName, e.Duration, e.Rating, e.Views, e.ReleaseDate)
	}
	tw.Flush()
}

func doneMark(done bool) string {
	if done {
		return " (completed)"
	}
	return ""
}

func isRecoverable(err error) bool {
	return errors.Is(err, apperr.ErrNetwork) || errors.Is(err, apperr.ErrBackend)
}

// watch replays playback from one position to another. Reaching the end
// reports completion the way the player does on its end event.
func watch(ctx context.Context, app *App, videoID string, from, to, total int) progress.Progress {
	email := app.Session.Current().Email

	var p progress.Progress
	for sec := from; sec <= to; sec++ {
		p = app.Tracker.ReportTick(ctx, email, videoID, float64(sec), float64(total))
	}
	if to >= total {
		p = app.Tracker.ReportComplete(ctx, email, videoID)
	}
	return p
}
