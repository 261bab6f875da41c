package report

import (
	"encoding/json"
	"strings"
	"testing"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date, amount string, txType models.TransactionType, category, institution string, pending bool) models.Transaction {
	return models.Transaction{
		Date:        date,
		Description: "x",
		Amount:      decimal.RequireFromString(amount),
		Type:        txType,
		Category:    category,
		Institution: institution,
		IsPending:   pending,
	}
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		tx("2024-03-01", "5000", models.TransactionTypeIncome, "Salário", "Inter", false),
		tx("2024-03-05", "120.50", models.TransactionTypeExpense, "Mercado", "Nubank Cred", false),
		tx("2024-03-06", "30", models.TransactionTypeExpense, "mercado", "Nubank Cred", false),
		tx("2024-03-07", "45.90", models.TransactionTypeExpense, "", "", true),
		tx("2024-04-01", "5000", models.TransactionTypeIncome, "Salário", "Inter", false),
	}
}

func TestBuild_Totals(t *testing.T) {
	s := Build(sampleTransactions(), Filter{})

	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1, s.Pending)
	assert.True(t, decimal.RequireFromString("10000").Equal(s.Income))
	assert.True(t, decimal.RequireFromString("196.40").Equal(s.Expense))
	assert.True(t, decimal.RequireFromString("9803.60").Equal(s.Net))
}

func TestBuild_GroupsIgnoreCaseAndSortByExpense(t *testing.T) {
	s := Build(sampleTransactions(), Filter{Month: "2024-03"})

	require.Len(t, s.ByCategory, 3)
	assert.Equal(t, "Mercado", s.ByCategory[0].Key)
	assert.Equal(t, 2, s.ByCategory[0].Count)
	assert.True(t, decimal.RequireFromString("150.50").Equal(s.ByCategory[0].Expense))
	assert.Equal(t, UncategorizedKey, s.ByCategory[1].Key)
	assert.Equal(t, "Salário", s.ByCategory[2].Key)
	assert.True(t, decimal.RequireFromString("5000").Equal(s.ByCategory[2].Net))

	require.Len(t, s.ByInstitution, 3)
	assert.Equal(t, "Nubank Cred", s.ByInstitution[0].Key)
	assert.Equal(t, NoInstitutionKey, s.ByInstitution[1].Key)
}

func TestBuild_Filters(t *testing.T) {
	s := Build(sampleTransactions(), Filter{Month: "2024-04"})
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, "2024-04", s.Month)

	s = Build(sampleTransactions(), Filter{ConfirmedOnly: true})
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 0, s.Pending)
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil, Filter{})

	assert.Equal(t, 0, s.Count)
	assert.NotNil(t, s.ByCategory)
	assert.NotNil(t, s.ByInstitution)
	assert.True(t, s.Net.IsZero())
}

func TestGenerator_JSON(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	out, err := g.Generate(Build(sampleTransactions(), Filter{Month: "2024-03"}), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "2024-03", decoded["month"])
	assert.Len(t, decoded["by_category"], 3)
}

func TestGenerator_CSV(t *testing.T) {
	g := NewGenerator(nil)

	out, err := g.Generate(Build(sampleTransactions(), Filter{Month: "2024-03"}), FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1+1+3+3)
	assert.Equal(t, "group,key,count,income,expense,net", lines[0])
	assert.Equal(t, "total,2024-03,4,5000.00,196.40,4803.60", lines[1])
	assert.Equal(t, "category,Mercado,2,0.00,150.50,-150.50", lines[2])
}

func TestGenerator_UnsupportedFormat(t *testing.T) {
	_, err := NewGenerator(nil).Generate(Summary{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}
