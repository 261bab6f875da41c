package common

import (
	"bytes"
	"testing"

	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func noColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

func TestPrintTransactions(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	PrintTransactions(&buf, []models.Transaction{
		{ID: "a1", Date: "2024-03-15", Description: "Uber *Trip", Amount: decimal.RequireFromString("23.5"), Type: models.TransactionTypeExpense, Category: "Transporte", Institution: "Nubank Cred"},
		{Date: "2024-03-16", Description: "Salário", Amount: decimal.RequireFromString("1000"), Type: models.TransactionTypeIncome, IsPending: true},
	})

	out := buf.String()
	assert.Contains(t, out, "-23.50")
	assert.Contains(t, out, "Saída")
	assert.Contains(t, out, "Transporte")
	assert.Contains(t, out, "id: a1")
	assert.Contains(t, out, "1000.00")
	assert.Contains(t, out, "(pending)")
}

func TestPrintImportResult(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	PrintImportResult(&buf, importer.ImportResult{
		FileName: "fatura.csv", Parser: "CSV", Total: 3, Pending: 1, AutoConfirmed: 2, Skipped: 1, Duplicates: 2, DryRun: true,
	})

	out := buf.String()
	assert.Contains(t, out, "Parsed (dry run) 3 transactions from fatura.csv")
	assert.Contains(t, out, "auto-confirmed: 2")
	assert.Contains(t, out, "pending review: 1")
	assert.Contains(t, out, "skipped rows: 1")
	assert.Contains(t, out, "2 possible duplicates")
}

func TestPrintRules(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	PrintRules(&buf, []models.CategoryRule{
		{ID: "r1", Term: "uber", MatchType: models.MatchTypeContains, Category: "Transporte", AutoConfirm: true, Institution: "Nubank"},
		{ID: "r2", Term: "Padaria", MatchType: models.MatchTypeExact, Category: "Mercado", Type: models.TransactionTypeExpense},
	})

	out := buf.String()
	assert.Contains(t, out, "1. contains")
	assert.Contains(t, out, "auto")
	assert.Contains(t, out, "institution=Nubank")
	assert.Contains(t, out, "2. exact")
	assert.Contains(t, out, "type=expense")
	assert.Contains(t, out, "id: r2")
}

func TestMessages(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	Success(&buf, "done %d", 1)
	Warning(&buf, "careful")
	Error(&buf, "failed: %s", "boom")

	assert.Equal(t, "✓ done 1\n! careful\nError: failed: boom\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "Pão…", truncate("Pão Quente", 4))
}

func TestPrintSummary(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	PrintSummary(&buf, report.Build([]models.Transaction{
		{Date: "2024-03-05", Amount: decimal.RequireFromString("120.5"), Type: models.TransactionTypeExpense, Category: "Mercado", Institution: "Inter"},
		{Date: "2024-03-06", Amount: decimal.RequireFromString("9.9"), Type: models.TransactionTypeExpense, IsPending: true},
	}, report.Filter{Month: "2024-03"}))

	out := buf.String()
	assert.Contains(t, out, "Month 2024-03: 2 transactions")
	assert.Contains(t, out, "130.40")
	assert.Contains(t, out, "1 pending review")
	assert.Contains(t, out, "By category")
	assert.Contains(t, out, "Mercado")
	assert.Contains(t, out, report.UncategorizedKey)
	assert.Contains(t, out, "By institution")
}
