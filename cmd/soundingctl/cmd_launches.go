package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLaunchesCmd(opts *options) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "launches",
		Short: "List launches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := opts.service(cmd)
			if err := svc.RefreshCatalog(cmd.Context()); err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tLAUNCH DATE (UTC)\tFILENAME")
			shown := 0
			for _, l := range svc.Catalog().Launches() {
				if year != 0 && l.LaunchDate.UTC().Year() != year {
					continue
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", l.ID, l.LaunchDate.UTC().Format("2006-01-02 15:04:05"), l.Filename)
				shown++
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if shown == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no launches found")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "only show launches from this year")
	return cmd
}
