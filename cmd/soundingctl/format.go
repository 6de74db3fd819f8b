package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

const notAvailable = "N/A"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// value formats an optional reading with two decimals and a unit.
func value(v *float64, unit string) string {
	if v == nil {
		return notAvailable
	}
	if unit == "" {
		return fmt.Sprintf("%.2f", *v)
	}
	return fmt.Sprintf("%.2f %s", *v, unit)
}
