package main

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/floork/mensa-cli/internal/mensa"
)

// reportError writes a human-readable error line to stderr. The invocation
// continues (or ends cleanly) afterwards; nothing recoverable is fatal.
func reportError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// exitWithError writes an error message to stderr and exits. Only
// startup-fatal conditions go through here.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// printMealTable renders one canteen's meals as a table under the canteen
// name.
func printMealTable(w io.Writer, canteenName string, rows []mensa.TabledMeal) {
	fmt.Fprintln(w, canteenName)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Students", "Employees", "Guests", "Notes"})
	table.SetColWidth(40)
	table.SetRowLine(true)

	for _, row := range rows {
		table.Append([]string{
			row.Name,
			formatPrice(row.StudentPrice),
			formatPrice(row.EmployeePrice),
			formatPrice(row.GuestPrice),
			row.Notes,
		})
	}

	table.Render()
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}
