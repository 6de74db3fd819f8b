package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
)

func newMonthlyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "monthly <year> <month>",
		Short: "Show launches and per-day performance for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[1])
			}

			svc := opts.service(cmd)
			if err := svc.RefreshCatalog(cmd.Context()); err != nil {
				return err
			}
			view, err := svc.Month(cmd.Context(), year, month)
			if err != nil {
				return err
			}

			perf := make(map[int]domain.MonthlyPerformance, len(view.Performance))
			for _, p := range view.Performance {
				perf[p.Day] = p
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "DAY\tLAUNCHES\tMAX ALTITUDE\tASCENT TIME")
			for _, d := range view.Calendar.Days {
				p, ok := perf[d.Day]
				if !ok && len(d.LaunchIDs) == 0 {
					continue
				}
				alt, ascent := notAvailable, notAvailable
				if ok {
					alt = value(&p.MaxAltitude, "m")
					ascent = value(&p.AscentTime, "min")
				}
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", d.Day, len(d.LaunchIDs), alt, ascent)
			}
			return tw.Flush()
		},
	}
}
