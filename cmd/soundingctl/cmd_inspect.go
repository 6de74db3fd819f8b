package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
)

// phase tracks pass/fail for one integrity check.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// maxReportedErrors caps the per-phase detail printed.
const maxReportedErrors = 10

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <measurements.json|->",
		Short: "Check an exported measurement series offline",
		Long: `inspect reads a JSON array of measurements (as served by the sounding API's
/launches/{id} endpoint), checks it for integrity problems and prints its summary.
Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := loadSeries(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), series)
		},
	}
}

func loadSeries(stdin io.Reader, path string) ([]domain.Measurement, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var series []domain.Measurement
	if err := json.NewDecoder(r).Decode(&series); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return series, nil
}

func inspect(w io.Writer, series []domain.Measurement) error {
	phases := []*phase{
		checkTimeOrdering(series),
		checkHeights(series),
		checkRanges(series),
	}

	fmt.Fprintf(w, "Measurements: %d (plotted: %d)\n\n", len(series), len(domain.ReduceSeries(series)))

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-24s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxReportedErrors {
				fmt.Fprintf(w, "  ... and %d more\n", len(p.errors)-maxReportedErrors)
				break
			}
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	fmt.Fprintln(w)
	if summary, ok := domain.Summarize(series); ok {
		if err := writeSummary(w, summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, "Summary: N/A (fewer than two measurements)")
	}
	fmt.Fprintln(w)
	if err := writeStatistics(w, domain.ComputeStatistics(series)); err != nil {
		return err
	}

	if !allPassed {
		return errors.New("integrity checks failed")
	}
	return nil
}

// checkTimeOrdering verifies elapsed time never decreases.
func checkTimeOrdering(series []domain.Measurement) *phase {
	p := &phase{name: "Time ordering"}
	var prev *float64
	for i, m := range series {
		if m.Time == nil {
			continue
		}
		if prev != nil && *m.Time < *prev {
			p.errorf("sample %d: time %.1f s before previous %.1f s", i, *m.Time, *prev)
		}
		prev = m.Time
	}
	return p
}

// checkHeights verifies every sample past the ground sample reports altitude.
func checkHeights(series []domain.Measurement) *phase {
	p := &phase{name: "Altitude coverage"}
	for i, m := range series {
		if i > 0 && m.Height == nil {
			p.errorf("sample %d: missing Height", i)
		}
	}
	return p
}

// checkRanges flags physically impossible readings.
func checkRanges(series []domain.Measurement) *phase {
	p := &phase{name: "Physical ranges"}
	for i, m := range series {
		if m.Temperature != nil && *m.Temperature < 0 {
			p.errorf("sample %d: negative temperature %.2f K", i, *m.Temperature)
		}
		if m.RelativeHumidity != nil && (*m.RelativeHumidity < 0 || *m.RelativeHumidity > 100) {
			p.errorf("sample %d: relative humidity %.2f %% out of range", i, *m.RelativeHumidity)
		}
		if m.Pressure != nil && *m.Pressure <= 0 {
			p.errorf("sample %d: non-positive pressure %.2f hPa", i, *m.Pressure)
		}
	}
	return p
}
