package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
)

func newProfileCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile <launch-id>",
		Short: "Show the summary and statistics of a launch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid launch id %q", args[0])
			}

			svc := opts.service(cmd)
			// The catalog only supplies the launch date; a failure here is not fatal.
			_ = svc.RefreshCatalog(cmd.Context())

			p, err := svc.Profile(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}

			fmt.Fprintf(out, "Launch %d", p.Launch.ID)
			if !p.Launch.LaunchDate.IsZero() {
				fmt.Fprintf(out, " (%s UTC)", p.Launch.LaunchDate.UTC().Format("2006-01-02 15:04"))
			}
			fmt.Fprintf(out, "\nMeasurements: %d (plotted: %d)\n\n", p.MeasurementCount, len(p.Reduced))

			if p.Summary == nil {
				fmt.Fprintln(out, "Summary: N/A (fewer than two measurements)")
			} else if err := writeSummary(out, *p.Summary); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return writeStatistics(out, p.Statistics)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full profile as JSON")
	return cmd
}

func writeSummary(w io.Writer, s domain.LaunchSummary) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Surface temperature\t%s\n", value(s.SurfaceTemperature, "°C"))
	fmt.Fprintf(tw, "Surface humidity\t%s\n", value(s.SurfaceRelativeHumidity, "%"))
	fmt.Fprintf(tw, "Max altitude\t%s at %s\n", value(s.MaxAltitude.Height, "m"), value(s.MaxAltitude.Pressure, "hPa"))
	fmt.Fprintf(tw, "Min temperature\t%s at %s\n", value(s.MinTemperature.Celsius, "°C"), value(s.MinTemperature.Height, "m"))
	fmt.Fprintf(tw, "Max wind\t%s (u %s, v %s) at %s\n",
		value(s.MaxWind.Speed, "m/s"), value(s.MaxWind.Zonal, ""), value(s.MaxWind.Meridional, ""), value(s.MaxWind.Height, "m"))
	fmt.Fprintf(tw, "Ascent time\t%s\n", value(s.AscentTimeMinutes(), "min"))
	fmt.Fprintf(tw, "Ascent speed\t%s\n", value(s.AscentSpeed, "m/s"))
	return tw.Flush()
}

func writeStatistics(w io.Writer, stats map[domain.Variable]domain.VariableStatistics) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "VARIABLE\tCOUNT\tMIN\tMAX\tMEAN\tSTDDEV")
	for _, v := range domain.Variables {
		st := stats[v]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", v, st.Count,
			value(st.Min, ""), value(st.Max, ""), value(st.Mean, ""), value(st.StandardDeviation, ""))
	}
	return tw.Flush()
}
