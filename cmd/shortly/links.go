package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"shortly-web/internal/clipboard"
	"shortly-web/internal/format"
	"shortly-web/internal/views"

	"github.com/spf13/cobra"
)

const barWidth = 20

func newShortenCmd(a *app) *cobra.Command {
	var (
		alias    string
		days     int
		copyLink bool
	)
	cmd := &cobra.Command{
		Use:   "shorten <url>",
		Short: "Create a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := views.ShortenForm{URL: args[0], CustomAlias: alias}
			if cmd.Flags().Changed("days") {
				form.ExpirationDays = strconv.Itoa(days)
			}

			page, err := views.Shorten(cmd.Context(), a.store, a.client.URLs, form)
			if err != nil {
				return err
			}
			if err := gate(page.Outcome); err != nil {
				return err
			}
			if page.Error != "" {
				return errors.New(page.Error)
			}

			fmt.Fprintln(cmd.OutOrStdout(), page.ShortURL)
			if copyLink {
				if err := clipboard.CopyToClipboard(a.clipboard, page.ShortURL); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not copy to clipboard: %v\n", err)
					return nil
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&alias, "alias", "", "custom alias (4-20 letters, digits, - or _)")
	cmd.Flags().IntVar(&days, "days", 0, "expire the link after this many days (1-365)")
	cmd.Flags().BoolVar(&copyLink, "copy", false, "copy the short link to the clipboard")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your short links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := views.LoadDashboard(cmd.Context(), a.store, a.client.URLs, search)
			if err != nil {
				return err
			}
			if err := gate(d.Outcome); err != nil {
				return err
			}
			if d.Error != "" {
				return errors.New(d.Error)
			}
			printDashboard(cmd.OutOrStdout(), d, time.Now())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show links whose URL or code contains this text")
	return cmd
}

func printDashboard(w io.Writer, d *views.Dashboard, now time.Time) {
	fmt.Fprintf(w, "Links: %s  Clicks: %s  Avg clicks: %s\n",
		format.FormatNumber(int64(d.TotalLinks)), format.FormatNumber(d.TotalClicks), d.AvgClicks)
	if d.Empty != "" {
		fmt.Fprintln(w, d.Empty)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCLICKS\tCREATED\tURL")
	for _, l := range d.Links {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			l.ShortCode, format.FormatNumber(l.Clicks), format.FormatDate(l.CreatedAt, now), l.OriginalURL)
	}
	tw.Flush()
	fmt.Fprintln(w, d.Summary)
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <code>",
		Short: "Show analytics for one of your links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := views.LoadStats(cmd.Context(), a.store, a.client.URLs, args[0], a.cfg.AppURL)
			if err != nil {
				return err
			}
			if err := gate(page.Outcome); err != nil {
				return err
			}
			if page.Error != "" {
				return errors.New(page.Error)
			}
			printStats(cmd.OutOrStdout(), page)
			return nil
		},
	}
}

func printStats(w io.Writer, page *views.StatsPage) {
	s := page.Stats
	fmt.Fprintf(w, "%s -> %s\n", page.ShortURL, s.OriginalURL)
	fmt.Fprintf(w, "Total clicks: %s  Today: %s  This week: %s\n",
		format.FormatNumber(s.TotalClicks), format.FormatNumber(s.ClicksToday), format.FormatNumber(s.ClicksThisWeek))

	printBars(w, "Top referrers", page.Referrers)
	printBars(w, "Countries", page.Countries)
	printBars(w, "Devices", page.Devices)

	fmt.Fprintln(w, "\nClicks over time")
	if len(page.Timeline) == 0 {
		fmt.Fprintln(w, "  No data yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range page.Timeline {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", p.Date, p.Count, bar(p.Height/views.TimelineHeight*100))
	}
	tw.Flush()
}

func printBars(w io.Writer, title string, bars []views.Bar) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(bars) == 0 {
		fmt.Fprintln(w, "  No data yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, b := range bars {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Label, format.FormatNumber(b.Value), bar(b.Percent))
	}
	tw.Flush()
}

// bar draws percent (0-100) as a run of at most barWidth blocks
func bar(percent float64) string {
	n := int(percent / 100 * barWidth)
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("#", n)
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code>",
		Short: "Delete one of your links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, msg, err := views.DeleteLink(cmd.Context(), a.store, a.client.URLs, args[0])
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
	}
}
