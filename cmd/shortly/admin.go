package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"shortly-web/internal/format"
	"shortly-web/internal/views"

	"github.com/spf13/cobra"
)

func newAdminCmd(a *app) *cobra.Command {
	var (
		search string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Show platform statistics and the most clicked links (admins only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.AdminTopURLsLimit
			}
			page, err := views.LoadAdmin(cmd.Context(), a.store, a.client.Admin, search, limit)
			if err != nil {
				return err
			}
			if err := gate(page.Outcome); err != nil {
				return err
			}
			printAdmin(cmd.OutOrStdout(), page)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter top links by URL, code or owner email")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of top links to fetch")

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <code>",
		Short: "Delete any user's link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, msg, err := views.AdminDeleteURL(cmd.Context(), a.store, a.client.Admin, args[0])
			if err != nil {
				return err
			}
			if err := gate(outcome); err != nil {
				return err
			}
			if err := failed(cmd.Context(), msg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})
	return cmd
}

func printAdmin(w io.Writer, page *views.AdminPage) {
	fmt.Fprintf(w, "Signed in as %s\n\n", page.User.Email)

	if page.StatsError != "" {
		fmt.Fprintf(w, "Stats unavailable: %s\n", page.StatsError)
	} else if s := page.Stats; s != nil {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "\tTOTAL\tTODAY\tTHIS WEEK")
		fmt.Fprintf(tw, "URLs\t%s\t%s\t%s\n",
			format.FormatNumber(s.TotalURLs), format.FormatNumber(s.URLsToday), format.FormatNumber(s.URLsThisWeek))
		fmt.Fprintf(tw, "Clicks\t%s\t%s\t%s\n",
			format.FormatNumber(s.TotalClicks), format.FormatNumber(s.ClicksToday), format.FormatNumber(s.ClicksThisWeek))
		fmt.Fprintf(tw, "Users\t%s\t\t\n", format.FormatNumber(s.TotalUsers))
		tw.Flush()
	}

	fmt.Fprintln(w)
	if page.URLsError != "" {
		fmt.Fprintf(w, "Top URLs unavailable: %s\n", page.URLsError)
		return
	}
	if len(page.URLs) == 0 {
		fmt.Fprintln(w, "No URLs found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCODE\tCLICKS\tOWNER\tURL")
	for i, u := range page.URLs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, u.ShortCode, format.FormatNumber(u.Clicks), u.UserEmail, u.OriginalURL)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d of %d URLs\n", len(page.URLs), page.TotalURLs)
}
