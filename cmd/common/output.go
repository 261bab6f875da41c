// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	faint  = color.New(color.Faint)
)

// Success prints a confirmation line.
func Success(w io.Writer, format string, args ...any) {
	_, _ = green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warning prints a highlighted line.
func Warning(w io.Writer, format string, args ...any) {
	_, _ = yellow.Fprintf(w, "! "+format+"\n", args...)
}

// Error prints an error line.
func Error(w io.Writer, format string, args ...any) {
	_, _ = red.Fprintf(w, "Error: "+format+"\n", args...)
}

// PrintTransactions prints one line per transaction. Pending transactions
// are highlighted.
func PrintTransactions(w io.Writer, txs []models.Transaction) {
	for _, tx := range txs {
		category := tx.Category
		if category == "" {
			category = "-"
		}
		line := fmt.Sprintf("%s  %-7s %12s  %-40s  %-16s  %s",
			tx.Date, tx.Type.Label(), tx.SignedAmount().StringFixed(2),
			truncate(tx.Description, 40), truncate(tx.Institution, 16), category)

		if tx.IsPending {
			_, _ = yellow.Fprintln(w, line+"  (pending)")
		} else {
			_, _ = fmt.Fprintln(w, line)
		}
		if tx.ID != "" {
			_, _ = faint.Fprintf(w, "    id: %s\n", tx.ID)
		}
	}
}

// PrintImportResult prints the counts of an import.
func PrintImportResult(w io.Writer, result importer.ImportResult) {
	verb := "Imported"
	if result.DryRun {
		verb = "Parsed (dry run)"
	}
	Success(w, "%s %d transactions from %s with the %s parser", verb, result.Total, result.FileName, result.Parser)
	_, _ = fmt.Fprintf(w, "  auto-confirmed: %d\n", result.AutoConfirmed)
	if result.Pending > 0 {
		_, _ = yellow.Fprintf(w, "  pending review: %d\n", result.Pending)
	} else {
		_, _ = fmt.Fprintf(w, "  pending review: %d\n", result.Pending)
	}
	if result.Skipped > 0 {
		_, _ = fmt.Fprintf(w, "  skipped rows: %d\n", result.Skipped)
	}
	if result.Duplicates > 0 {
		Warning(w, "%d possible duplicates in this file", result.Duplicates)
	}
}

// PrintRules prints rules in evaluation order.
func PrintRules(w io.Writer, rules []models.CategoryRule) {
	for i, rule := range rules {
		var filters []string
		if rule.Institution != "" {
			filters = append(filters, "institution="+rule.Institution)
		}
		if rule.Type != "" {
			filters = append(filters, "type="+string(rule.Type))
		}
		mode := "review"
		if rule.AutoConfirm {
			mode = "auto"
		}
		_, _ = fmt.Fprintf(w, "%3d. %-8s %-30q -> %-20s %-6s %s\n",
			i+1, rule.MatchType, rule.Term, rule.Category, mode, strings.Join(filters, " "))
		_, _ = faint.Fprintf(w, "     id: %s\n", rule.ID)
	}
}

// PrintSummary prints report totals and the per category and per
// institution lines.
func PrintSummary(w io.Writer, s report.Summary) {
	title := "All transactions"
	if s.Month != "" {
		title = "Month " + s.Month
	}
	_, _ = green.Fprintf(w, "%s: %d transactions\n", title, s.Count)
	_, _ = fmt.Fprintf(w, "  income:  %12s\n  expense: %12s\n  net:     %12s\n",
		s.Income.StringFixed(2), s.Expense.StringFixed(2), s.Net.StringFixed(2))
	if s.Pending > 0 {
		_, _ = yellow.Fprintf(w, "  %d pending review\n", s.Pending)
	}

	printLines(w, "By category", s.ByCategory)
	printLines(w, "By institution", s.ByInstitution)
}

func printLines(w io.Writer, title string, lines []report.Line) {
	if len(lines) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", title)
	for _, line := range lines {
		_, _ = fmt.Fprintf(w, "  %-24s %4d  %12s  %12s\n",
			truncate(line.Key, 24), line.Count, line.Expense.StringFixed(2), line.Net.StringFixed(2))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
