// Package report implements the spending summary command
package report

import (
	"fmt"
	"time"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/report"
	"fjacquet/fintrack/internal/store"

	"github.com/spf13/cobra"
)

var (
	month         string
	format        string
	confirmedOnly bool
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize transactions by category and institution",
	Long: `Summarize stored transactions: income, expense and net totals, then one
line per category and per institution, largest expense first.

Example:
  fintrack report --month 2024-03
  fintrack report --format csv > marco.csv`,
	RunE: runReport,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Only transactions of this month (YYYY-MM)")
	Cmd.Flags().StringVarP(&format, "format", "f", "text", "text, json or csv")
	Cmd.Flags().BoolVar(&confirmedOnly, "confirmed", false, "Leave out pending transactions")
}

func runReport(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return fmt.Errorf("month must be YYYY-MM, got %q", month)
		}
	}

	txs, err := appContainer.GetStore().Transactions().List(cmd.Context(), store.ListFilter{})
	if err != nil {
		return err
	}
	summary := report.Build(txs, report.Filter{Month: month, ConfirmedOnly: confirmedOnly})

	if format == "text" {
		common.PrintSummary(cmd.OutOrStdout(), summary)
		return nil
	}

	out, err := report.NewGenerator(appContainer.GetLogger()).Generate(summary, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
